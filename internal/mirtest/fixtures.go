package mirtest

import (
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

func u32() types.TypeRef { return types.NewPrimitive(types.U32) }

// BuiltinCases is the small, hand-written fixture set mir_opt_test ships
// with: enough to exercise DCE/const-prop/LICM/BorrowCheck end to end
// without a lexer/parser to load real source from.
func BuiltinCases() []Case {
	return []Case{
		{
			Name: "fold_constant_add",
			Fn: mir.NewFunction(
				[]types.TypeRef{u32(), u32(), u32()},
				nil,
				[]mir.BasicBlock{
					mir.NewBasicBlock(mir.RetTerm(),
						mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(2, u32()))),
						mir.Assign(mir.NewLValue(mir.LocalSlot(2)), mir.ConstRV(mir.Uint(3, u32()))),
						mir.Assign(mir.NewLValue(mir.Return()), mir.BinOp(
							mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))), mir.OpAdd,
							mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(2))),
						)),
					),
				},
			),
		},
		{
			Name: "drop_unreachable_block",
			Fn: mir.NewFunction(
				[]types.TypeRef{u32()},
				nil,
				[]mir.BasicBlock{
					mir.NewBasicBlock(mir.RetTerm(), mir.Assign(mir.NewLValue(mir.Return()), mir.ConstRV(mir.Uint(7, u32())))),
					mir.NewBasicBlock(mir.RetTerm()),
				},
			),
		},
		{
			Name: "use_after_move_fails_borrowcheck",
			Fn: mir.NewFunction(
				[]types.TypeRef{u32(), u32()},
				nil,
				[]mir.BasicBlock{
					mir.NewBasicBlock(mir.RetTerm(),
						mir.Assign(mir.NewLValue(mir.LocalSlot(1)), mir.ConstRV(mir.Uint(1, u32()))),
						mir.Drop(mir.NewLValue(mir.LocalSlot(1)), mir.DropDeep, nil),
						mir.Assign(mir.NewLValue(mir.Return()), mir.Use(mir.ParamFromLValue(mir.NewLValue(mir.LocalSlot(1))))),
					),
				},
			),
		},
	}
}
