// Package arch defines the CHIP-8 instruction set along with
// some related helper functions.
package arch

// Kind identifies a decoded instruction variant.
type Kind int

// Known instruction kinds.
const (
	Unknown Kind = iota

	CLS  // 00E0
	RET  // 00EE
	JP   // 1NNN
	CALL // 2NNN
	SEI  // 3XNN
	SNEI // 4XNN
	SER  // 5XY0
	LDI  // 6XNN
	ADDI // 7XNN

	LDR  // 8XY0
	OR   // 8XY1
	AND  // 8XY2
	XOR  // 8XY3
	ADDR // 8XY4
	SUB  // 8XY5
	SHR  // 8XY6
	SUBN // 8XY7
	SHL  // 8XYE
	SNER // 9XY0

	LDIDX // ANNN
	JPV0  // BNNN
	RND   // CXNN
	DRW   // DXYN
	SKP   // EX9E
	SKNP  // EXA1

	LDVDT  // FX07
	LDVK   // FX0A
	LDDTV  // FX15
	LDSTV  // FX18
	ADDIDX // FX1E
	LDF    // FX29
	LDB    // FX33
	LDMV   // FX55
	LDVM   // FX65

	KindCount
)

// Opcode field accessors.
func X(op uint16) int      { return int(op>>8) & 0xf }
func Y(op uint16) int      { return int(op>>4) & 0xf }
func N(op uint16) int      { return int(op) & 0xf }
func NN(op uint16) byte    { return byte(op) }
func NNN(op uint16) uint16 { return op & 0xfff }

// Decode returns the instruction kind for the given opcode.
// The top nibble selects the family; families 0, 8, E and F are further
// narrowed by their sub-opcode. Returns Unknown if the opcode is not
// part of the instruction set.
func Decode(op uint16) Kind {
	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00e0:
			return CLS
		case 0x00ee:
			return RET
		}
	case 0x1:
		return JP
	case 0x2:
		return CALL
	case 0x3:
		return SEI
	case 0x4:
		return SNEI
	case 0x5:
		if op&0xf == 0 {
			return SER
		}
	case 0x6:
		return LDI
	case 0x7:
		return ADDI
	case 0x8:
		return alu[op&0xf]
	case 0x9:
		if op&0xf == 0 {
			return SNER
		}
	case 0xa:
		return LDIDX
	case 0xb:
		return JPV0
	case 0xc:
		return RND
	case 0xd:
		return DRW
	case 0xe:
		switch op & 0xff {
		case 0x9e:
			return SKP
		case 0xa1:
			return SKNP
		}
	case 0xf:
		switch op & 0xff {
		case 0x07:
			return LDVDT
		case 0x0a:
			return LDVK
		case 0x15:
			return LDDTV
		case 0x18:
			return LDSTV
		case 0x1e:
			return ADDIDX
		case 0x29:
			return LDF
		case 0x33:
			return LDB
		case 0x55:
			return LDMV
		case 0x65:
			return LDVM
		}
	}
	return Unknown
}

// alu maps the low nibble of an 8XYN opcode to its kind.
var alu = [16]Kind{
	0x0: LDR,
	0x1: OR,
	0x2: AND,
	0x3: XOR,
	0x4: ADDR,
	0x5: SUB,
	0x6: SHR,
	0x7: SUBN,
	0xe: SHL,
}

// Name returns the mnemonic for the given instruction kind.
// Returns false if the kind is not recognized.
func Name(k Kind) (string, bool) {
	if k <= Unknown || k >= KindCount {
		return "", false
	}
	return names[k], true
}

var names = [KindCount]string{
	CLS:    "CLS",
	RET:    "RET",
	JP:     "JP",
	CALL:   "CALL",
	SEI:    "SE",
	SNEI:   "SNE",
	SER:    "SE",
	LDI:    "LD",
	ADDI:   "ADD",
	LDR:    "LD",
	OR:     "OR",
	AND:    "AND",
	XOR:    "XOR",
	ADDR:   "ADD",
	SUB:    "SUB",
	SHR:    "SHR",
	SUBN:   "SUBN",
	SHL:    "SHL",
	SNER:   "SNE",
	LDIDX:  "LD",
	JPV0:   "JP",
	RND:    "RND",
	DRW:    "DRW",
	SKP:    "SKP",
	SKNP:   "SKNP",
	LDVDT:  "LD",
	LDVK:   "LD",
	LDDTV:  "LD",
	LDSTV:  "LD",
	ADDIDX: "ADD",
	LDF:    "LD",
	LDB:    "LD",
	LDMV:   "LD",
	LDVM:   "LD",
}
