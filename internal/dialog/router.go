package dialog

// entryTriggers maps both trigger spellings of each flow — the slash command
// and the menu callback tag — onto one entry point. The two ways in are the
// same path, not parallel code.
var entryTriggers = map[string]Flow{
	"inbill":      FlowBill,
	"goto_inbill": FlowBill,

	"expense":      FlowExpense,
	"goto_expense": FlowExpense,

	"report":      FlowReport,
	"goto_report": FlowReport,
}

// EntryFlow resolves an inbound trigger to the flow it starts.
func EntryFlow(trigger string) (Flow, bool) {
	f, ok := entryTriggers[trigger]
	return f, ok
}
