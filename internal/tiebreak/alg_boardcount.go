package tiebreak

// algBoardCount sums each board's points weighted by its board number, the
// team tournament's board-count criterion ("Board count").
func algBoardCount(e *Engine, td *TiebreakDescriptor) string {
	_, _, prefix := e.scoreInfo(td, true)
	for _, cmp := range e.Cmps {
		bpAcc := cmp.stat("gpoints_bp")
		acc := newScalarAcc(Zero)
		bc := Zero
		for board, v := range bpAcc.Rounds {
			points, ok := v.(Decimal)
			if !ok {
				continue
			}
			contrib := points.MulInt(board)
			bc = bc.Add(contrib)
			acc.setRound(board, contrib)
		}
		acc.Val = bc
		cmp.State[prefix+"bc"] = acc
	}
	return "bc"
}
