package fare

import "unicode/utf16"

// Quote is a priced class as shown on the train detail page.
type Quote struct {
	Class       Class  `json:"class"`
	Description string `json:"description"`
	Price       int    `json:"price"`
}

// Price derives a deterministic ticket price from the train number and the
// class label. The hash is the sum of the train number's UTF-16 code units
// plus seven times the sum of the class label's code units; each class
// then maps it into its own band. Unknown classes cost 1000.
func Price(trainNumber string, c Class) int {
	hash := 0
	for _, u := range utf16.Encode([]rune(trainNumber)) {
		hash += int(u)
	}
	for _, u := range utf16.Encode([]rune(string(c))) {
		hash += int(u) * 7
	}
	switch c {
	case Class1A:
		return 3000 + hash%1500
	case Class2A:
		return 1800 + hash%600
	case Class3A:
		return 1100 + hash%300
	case ClassSL:
		return 400 + hash%100
	}
	return 1000
}

// Quotes prices every class for one train.
func Quotes(trainNumber string) []Quote {
	out := make([]Quote, 0, len(Classes))
	for _, c := range Classes {
		out = append(out, Quote{Class: c, Description: Describe(c), Price: Price(trainNumber, c)})
	}
	return out
}
