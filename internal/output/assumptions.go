package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Interest accrues monthly at the nominal annual rate / 12 on the opening balance",
	"Prepayments are applied after the regular payment of their month",
	"Reduce-term keeps the payment (or principal portion) and shortens the schedule",
	"Reduce-payment keeps the end date and re-amortizes the remaining balance",
	"No fees, grace periods, rate changes or tax effects are modeled",
}
