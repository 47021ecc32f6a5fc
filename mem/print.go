package mem

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Dump writes the firmware map and the live allocation table to w as
// aligned text. Byte counts are digit-grouped for readability; addresses
// stay hexadecimal.
func Dump(m *Map, w io.Writer) error {
	p := message.NewPrinter(language.English)

	if _, err := fmt.Fprintln(w, "firmware memory map:"); err != nil {
		return err
	}
	for c := NewCursorAt(m.phys, m.mapAddr); !c.IsEnd(); c.Next() {
		e := c.Entry()
		_, err := fmt.Fprintf(w, "  [%#012x, %#012x)  %-16s  %s bytes\n",
			e.Base, e.Base+e.Length, e.TypeString(), p.Sprintf("%d", e.Length))
		if err != nil {
			return err
		}
	}

	if m.tableAddr == 0 {
		_, err := fmt.Fprintln(w, "allocation table: not initialized")
		return err
	}

	if _, err := fmt.Fprintf(w, "allocation table at %#x (%d records):\n", m.tableAddr, m.count); err != nil {
		return err
	}
	for i := uint64(0); i < m.count; i++ {
		rec := m.recordAt(i)
		tag := ""
		switch {
		case isBootstrap(rec):
			tag = "  (bootstrap reservation)"
		case rec.Addr == m.tableAddr:
			tag = "  (allocation table)"
		}
		_, err := fmt.Fprintf(w, "  %3d: [%#012x, %#012x)  size %s  reserved %s%s\n",
			i, rec.Addr, rec.End(),
			p.Sprintf("%d", rec.Size), p.Sprintf("%d", rec.Reserved), tag)
		if err != nil {
			return err
		}
	}
	return nil
}
