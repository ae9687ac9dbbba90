package arch

import "fmt"

// Disassemble returns the assembly representation of the given opcode.
// Opcodes outside the instruction set are rendered as a data word.
func Disassemble(op uint16) string {
	k := Decode(op)
	name, ok := Name(k)
	if !ok {
		return fmt.Sprintf("DW $%04X", op)
	}

	if args := Operands(k, op); args != "" {
		return name + " " + args
	}
	return name
}

// Operands returns the formatted operand list for an opcode of the given kind.
func Operands(k Kind, op uint16) string {
	x, y := RegisterName(X(op)), RegisterName(Y(op))

	switch k {
	case JP, CALL:
		return fmt.Sprintf("$%03X", NNN(op))
	case JPV0:
		return fmt.Sprintf("V0, $%03X", NNN(op))
	case SEI, SNEI, LDI, ADDI, RND:
		return fmt.Sprintf("%s, $%02X", x, NN(op))
	case SER, SNER, LDR, OR, AND, XOR, ADDR, SUB, SUBN, SHR, SHL:
		return fmt.Sprintf("%s, %s", x, y)
	case LDIDX:
		return fmt.Sprintf("I, $%03X", NNN(op))
	case DRW:
		return fmt.Sprintf("%s, %s, $%X", x, y, N(op))
	case SKP, SKNP:
		return x
	case LDVDT:
		return x + ", DT"
	case LDVK:
		return x + ", K"
	case LDDTV:
		return "DT, " + x
	case LDSTV:
		return "ST, " + x
	case ADDIDX:
		return "I, " + x
	case LDF:
		return "F, " + x
	case LDB:
		return "B, " + x
	case LDMV:
		return "[I], " + x
	case LDVM:
		return x + ", [I]"
	}
	return ""
}
