package tac

import "github.com/decaflang/decaf/internal/ast"

// Layout computes field offsets and vtable slots for every class in
// classes, in any order: LayoutClass recurses up the parent chain and
// memoizes on FieldCount >= 0 per spec.md §4.4.1, so repeated calls across
// an unordered class list do redundant work only on the first visit to each
// ancestor.
func Layout(classes []*ast.ClassDef) []*ClassLayout {
	out := make([]*ClassLayout, 0, len(classes))
	for _, c := range classes {
		LayoutClass(c)
	}
	for _, c := range classes {
		out = append(out, &ClassLayout{
			ClassName:  c.Name,
			FieldCount: c.FieldCount,
			VTable:     c.VTable,
		})
	}
	return out
}

// LayoutClass assigns c.FieldCount and c.VTable, recursing into c's parent
// first. Already-laid-out classes (FieldCount >= 0) are skipped, making
// this safe to call redundantly for any class reachable via ParentRef.
func LayoutClass(c *ast.ClassDef) {
	if c == nil || c.FieldCount >= 0 {
		return
	}
	LayoutClass(c.ParentRef)

	baseFields := 0
	var parentSlots []string
	if c.ParentRef != nil {
		baseFields = c.ParentRef.FieldCount
		if c.ParentRef.VTable != nil {
			parentSlots = append(parentSlots, c.ParentRef.VTable.Slots...)
		}
	}

	vt := &ast.VTable{Slots: append([]string{}, parentSlots...)}
	slotOf := make(map[string]int, len(vt.Slots))
	for i, name := range vt.Slots {
		slotOf[unqualify(name)] = i
	}

	nextField := baseFields
	for _, f := range c.Fields {
		switch field := f.(type) {
		case *ast.VarDef:
			field.FieldOffset = nextField
			nextField++

		case *ast.MethodDef:
			if field.Static {
				continue
			}
			qualified := c.Name + "." + field.Name
			if slot, ok := slotOf[field.Name]; ok {
				field.VTableOffset = slot
				vt.Slots[slot] = qualified
			} else {
				field.VTableOffset = len(vt.Slots)
				slotOf[field.Name] = len(vt.Slots)
				vt.Slots = append(vt.Slots, qualified)
			}
		}
	}

	c.FieldCount = nextField
	c.VTable = vt
}

func unqualify(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}
