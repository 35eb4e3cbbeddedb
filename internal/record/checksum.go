package record

// checksumLength is the number of bytes a checksum record occupies.
const checksumLength = 1

// Checksum is a pseudo instruction that emits the xor checksum of the
// memory records since the program start or the previous checksum record.
type Checksum struct {
	line

	address uint16
	covered []Memory // borrowed from the program, never modified
}

// NewChecksum creates a checksum record at the given address covering the
// given memory records.
func NewChecksum(src Source, address uint16, covered []Memory) *Checksum {
	return &Checksum{
		line:    line{src: src},
		address: address,
		covered: covered,
	}
}

// Address returns the memory address of the checksum byte.
func (c *Checksum) Address() uint16 { return c.address }

// Covered returns the number of memory records the checksum covers.
func (c *Checksum) Covered() int { return len(c.covered) }

// Value computes the xor of the checksums of all covered records.
func (c *Checksum) Value() byte {
	var chk byte
	for _, m := range c.covered {
		chk ^= ChecksumOf(m)
	}
	return chk
}

func (*Checksum) memory() {}
