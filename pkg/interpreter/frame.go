package interpreter

import "wspace/pkg/program"

// Frame represents one pending subroutine call.
type Frame struct {
	Label    program.Label // label the subroutine was called through
	ReturnIP int           // instruction index to resume at after return
	CallLine int           // source line of the call instruction
}
