package format

// E820Entry is one decoded firmware memory map entry.
type E820Entry struct {
	Base   uint64
	Length uint64
	Type   uint32
	Attr   uint32
}

// Usable reports whether the entry describes RAM the OS may use.
func (e E820Entry) Usable() bool {
	return e.Type == E820TypeUsable
}

// End is true for the sentinel entry terminating the map. The loader's
// real-mode stub zero-fills the slot after the last entry, so a zero length
// marks end of list.
func (e E820Entry) End() bool {
	return e.Length == 0
}

// TypeString returns a human-readable name for the entry's classification.
func (e E820Entry) TypeString() string {
	switch e.Type {
	case E820TypeUsable:
		return "usable"
	case E820TypeReserved:
		return "reserved"
	case E820TypeACPIReclaim:
		return "ACPI reclaimable"
	case E820TypeACPINVS:
		return "ACPI NVS"
	case E820TypeBad:
		return "bad"
	default:
		return "unknown"
	}
}

// ReadE820Entry decodes the entry at off. Returns ErrTruncated when the
// buffer cannot hold a full entry there.
func ReadE820Entry(b []byte, off int) (E820Entry, error) {
	if off < 0 || off+E820EntrySize > len(b) {
		return E820Entry{}, ErrTruncated
	}
	return E820Entry{
		Base:   ReadU64(b, off+E820BaseOff),
		Length: ReadU64(b, off+E820LengthOff),
		Type:   ReadU32(b, off+E820TypeOff),
		Attr:   ReadU32(b, off+E820AttrOff),
	}, nil
}

// PutE820Entry encodes e at off, zeroing the pad bytes of the 32-byte stride.
func PutE820Entry(b []byte, off int, e E820Entry) error {
	if off < 0 || off+E820EntrySize > len(b) {
		return ErrTruncated
	}
	PutU64(b, off+E820BaseOff, e.Base)
	PutU64(b, off+E820LengthOff, e.Length)
	PutU32(b, off+E820TypeOff, e.Type)
	PutU32(b, off+E820AttrOff, e.Attr)
	PutU64(b, off+24, 0)
	return nil
}
