package format

// Record is one allocation table entry.
//
// Addr is the block's physical base, Size the byte count the client asked
// for, Reserved the page-multiple extent actually held. Reserved >= Size
// always; a record with Addr == MaxAddr is retired.
type Record struct {
	Addr     uint64
	Size     uint64
	Reserved uint64
}

// Retired reports whether the record carries the retirement sentinel.
func (r Record) Retired() bool {
	return r.Addr == MaxAddr
}

// End returns the exclusive upper bound of the record's reservation.
func (r Record) End() uint64 {
	return r.Addr + r.Reserved
}

// ReadRecord decodes the record at off. The caller guarantees bounds; a
// short buffer yields the zero record.
func ReadRecord(b []byte, off int) Record {
	if off < 0 || off+RecordSize > len(b) {
		return Record{}
	}
	return Record{
		Addr:     ReadU64(b, off+RecAddrOff),
		Size:     ReadU64(b, off+RecSizeOff),
		Reserved: ReadU64(b, off+RecReservedOff),
	}
}

// PutRecord encodes r at off. A short buffer is a no-op.
func PutRecord(b []byte, off int, r Record) {
	if off < 0 || off+RecordSize > len(b) {
		return
	}
	PutU64(b, off+RecAddrOff, r.Addr)
	PutU64(b, off+RecSizeOff, r.Size)
	PutU64(b, off+RecReservedOff, r.Reserved)
}
