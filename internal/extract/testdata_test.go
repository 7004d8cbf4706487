package extract

import "cardstats/internal/workbook"

// rbiLayout mimics the bank-wise ATM/POS/card statistics release: a title,
// a blank row, then a 3 row header block with merged group labels.
func rbiLayout(dataRows ...[]string) workbook.Table {
	rows := [][]string{
		{"Bank-wise ATM/POS/Card Statistics for the Month of September 2025"},
		{},
		{"Sr. No", "Bank Name", "Infrastructure as on month end", "", "", "Card Payments Transactions during the month"},
		{"", "", "Credit Cards", "Debit Cards", "Number of ATMs", "Credit Card at PoS", "", "Debit Card at PoS"},
		{"", "", "", "", "", "Volume", "Value (Rs '000)", "Volume", "Value (Rs '000)"},
	}
	rows = append(rows, dataRows...)
	return workbook.NewTable(rows)
}

var rbiColumns = []string{
	"sr_no",
	"bank_name",
	"infrastructure_as_on_month_end_credit_cards",
	"infrastructure_as_on_month_end_debit_cards",
	"infrastructure_as_on_month_end_number_of_atms",
	"card_payments_transactions_during_the_month_credit_card_at_pos_volume",
	"card_payments_transactions_during_the_month_credit_card_at_pos_value_rs_000",
	"card_payments_transactions_during_the_month_debit_card_at_pos_volume",
	"card_payments_transactions_during_the_month_debit_card_at_pos_value_rs_000",
}
