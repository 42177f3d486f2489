package tac

import (
	"fmt"
	"strings"
)

// Print renders p as the textual dump format spec.md §6 names: one method
// per section, one instruction per line. Registers are always rendered as
// "_T<n>" and labels as "_L<n>" — a normalization decision documented in
// SPEC_FULL.md §4.9, since this repository has no separate disassembler
// surface distinguishing bare integers from register names.
func Print(p *Program) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; entry %s\n", p.Entry)
	for _, c := range p.Classes {
		fmt.Fprintf(&sb, "; class %s fields=%d vtable=%v\n", c.ClassName, c.FieldCount, c.VTable.Slots)
	}
	for _, m := range p.Methods {
		sb.WriteString(m.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Method) String() string {
	var sb strings.Builder
	kind := "method"
	if m.Static {
		kind = "static method"
	}
	fmt.Fprintf(&sb, "%s %s(params=%d, regs=%d):\n", kind, m.QualifiedName, m.NumParams, m.NumRegs)
	for _, in := range m.Instrs {
		if in.Op == OpLabel {
			fmt.Fprintf(&sb, "%s:\n", labelStr(in.Label))
			continue
		}
		fmt.Fprintf(&sb, "    %s\n", in.String())
	}
	return sb.String()
}

func regStr(r Reg) string      { return fmt.Sprintf("_T%d", r) }
func labelStr(lb Label) string { return fmt.Sprintf("_L%d", lb) }

func constStr(v interface{}) string {
	switch c := v.(type) {
	case string:
		return fmt.Sprintf("%q", c)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", c)
	}
}

func binSymbol(op Op) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "?"
	}
}

// String renders one instruction matching the reference code generator's
// Display impl for its Tac enum exactly, with one intentional correction:
// Load's negative-offset branch uses "_T<dst>" consistently, where the
// reference impl's Display drops the _T prefix on dst only in that branch.
func (in Instr) String() string {
	switch in.Op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpLt, OpLe, OpGt, OpGe, OpEq, OpNe, OpAnd, OpOr:
		return fmt.Sprintf("%s = (%s %s %s)", regStr(in.Dst), regStr(in.Src1), binSymbol(in.Op), regStr(in.Src2))

	case OpNeg:
		return fmt.Sprintf("%s = - %s ", regStr(in.Dst), regStr(in.Src1))
	case OpNot:
		return fmt.Sprintf("%s = ! %s ", regStr(in.Dst), regStr(in.Src1))

	case OpAssign:
		return fmt.Sprintf("%s =  %s ", regStr(in.Dst), regStr(in.Src1))

	case OpLoadConst:
		return fmt.Sprintf("%s = %s", regStr(in.Dst), constStr(in.Const))

	case OpLoad:
		if in.FieldOffset >= 0 {
			return fmt.Sprintf("%s = *(%s + %d)", regStr(in.Dst), regStr(in.Src1), in.FieldOffset)
		}
		return fmt.Sprintf("%s = *(%s - %d)", regStr(in.Dst), regStr(in.Src1), -in.FieldOffset)

	case OpStore:
		if in.FieldOffset >= 0 {
			return fmt.Sprintf("*(%s + %d) = %s", regStr(in.Src1), in.FieldOffset, regStr(in.Src2))
		}
		return fmt.Sprintf("*(%s - %d) = %s", regStr(in.Src1), -in.FieldOffset, regStr(in.Src2))

	case OpLoadVTbl:
		return fmt.Sprintf("%s = VTBL <_%s>", regStr(in.Dst), in.VTableClass)

	case OpJump:
		return "branch " + labelStr(in.Label)
	case OpJumpIfZero:
		return fmt.Sprintf("if (%s == 0) branch %s", regStr(in.Src1), labelStr(in.Label))
	case OpJumpIfNotZero:
		return fmt.Sprintf("if (%s != 0) branch %s", regStr(in.Src1), labelStr(in.Label))

	case OpCall:
		if in.HasDst {
			return fmt.Sprintf("%s = call %s", regStr(in.Dst), in.CallTarget)
		}
		return "call " + in.CallTarget
	case OpIndirectCall:
		if in.HasDst {
			return fmt.Sprintf("%s = call %s", regStr(in.Dst), regStr(in.Src1))
		}
		return "call " + regStr(in.Src1)

	case OpReturn:
		if in.HasSrc1 {
			return "return " + regStr(in.Src1)
		}
		return "return <empty>"

	case OpParam:
		return "parm " + regStr(in.Src1)

	default:
		return fmt.Sprintf("%s = %s %s %s", regStr(in.Dst), regStr(in.Src1), binSymbol(in.Op), regStr(in.Src2))
	}
}
