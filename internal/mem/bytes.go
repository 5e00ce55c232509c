// Package mem provides a sparse, paged, 16-bit byte address space.
package mem

const (
	// PageSize is the length of every page; it divides the address space evenly.
	PageSize = 0x100

	numPages = 0x10000 / PageSize
)

type page [PageSize]byte

// Bytes implements a 64KiB byte-oriented memory whose pages are allocated on
// first store. Addresses wrap from 0xFFFF back to 0x0000.
// The zero value is an empty memory, reading as all zeros.
type Bytes struct {
	pages [numPages]*page
	count int
}

// Size returns the number of bytes allocated so far.
func (m *Bytes) Size() int { return m.count * PageSize }

// Pages returns the base address of every allocated page in ascending order.
func (m *Bytes) Pages() []uint16 {
	bases := make([]uint16, 0, m.count)
	for i, pg := range m.pages {
		if pg != nil {
			bases = append(bases, uint16(i*PageSize))
		}
	}
	return bases
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
func (m *Bytes) Load(addr uint16) byte {
	if pg := m.pages[addr/PageSize]; pg != nil {
		return pg[addr%PageSize]
	}
	return 0
}

// LoadInto reads len(buf) bytes from memory starting at addr, wrapping past
// the top of the address space.
func (m *Bytes) LoadInto(addr uint16, buf []byte) {
	for len(buf) > 0 {
		off := int(addr % PageSize)
		n := PageSize - off
		if n > len(buf) {
			n = len(buf)
		}
		if pg := m.pages[addr/PageSize]; pg != nil {
			copy(buf[:n], pg[off:])
		} else {
			for i := range buf[:n] {
				buf[i] = 0
			}
		}
		buf = buf[n:]
		addr += uint16(n)
	}
}

// Stor stores any values at addr, allocating pages if necessary.
// Stores running past 0xFFFF continue at 0x0000.
func (m *Bytes) Stor(addr uint16, values ...byte) {
	for len(values) > 0 {
		pg := m.page(addr / PageSize)
		n := copy(pg[addr%PageSize:], values)
		values = values[n:]
		addr += uint16(n)
	}
}

func (m *Bytes) page(id uint16) *page {
	pg := m.pages[id]
	if pg == nil {
		pg = new(page)
		m.pages[id] = pg
		m.count++
	}
	return pg
}
