package search

import "strings"

// Categories is the fixed list shown by the category slider.
var Categories = []string{
	"Bar", "Biscuit", "Brownie", "Cake", "Churro", "Cookie",
	"Cream Puff", "Crumble", "Custard", "Doughnut", "Fudge", "Macaron",
	"Meringue", "Mousse", "Muffin", "Parfait", "Pastry", "Pavlova",
	"Pie", "Pudding", "Soufflé", "Tart", "Truffle", "Éclair",
}

// DisplayCategory returns the listed spelling of name, matched without
// regard to case, or name itself when it is not listed.
func DisplayCategory(name string) string {
	for _, c := range Categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return name
}
