package query

// usStates maps lowercased US state names and two-letter abbreviations
// to true. Used to decide whether a location term is a state region or
// a country code.
var usStates = map[string]bool{
	"alabama": true, "al": true,
	"alaska": true, "ak": true,
	"arizona": true, "az": true,
	"arkansas": true, "ar": true,
	"california": true, "ca": true,
	"colorado": true, "co": true,
	"connecticut": true, "ct": true,
	"delaware": true, "de": true,
	"florida": true, "fl": true,
	"georgia": true, "ga": true,
	"hawaii": true, "hi": true,
	"idaho": true, "id": true,
	"illinois": true, "il": true,
	"indiana": true, "in": true,
	"iowa": true, "ia": true,
	"kansas": true, "ks": true,
	"kentucky": true, "ky": true,
	"louisiana": true, "la": true,
	"maine": true, "me": true,
	"maryland": true, "md": true,
	"massachusetts": true, "ma": true,
	"michigan": true, "mi": true,
	"minnesota": true, "mn": true,
	"mississippi": true, "ms": true,
	"missouri": true, "mo": true,
	"montana": true, "mt": true,
	"nebraska": true, "ne": true,
	"nevada": true, "nv": true,
	"new hampshire": true, "nh": true,
	"new jersey": true, "nj": true,
	"new mexico": true, "nm": true,
	"new york": true, "ny": true,
	"north carolina": true, "nc": true,
	"north dakota": true, "nd": true,
	"ohio": true, "oh": true,
	"oklahoma": true, "ok": true,
	"oregon": true, "or": true,
	"pennsylvania": true, "pa": true,
	"rhode island": true, "ri": true,
	"south carolina": true, "sc": true,
	"south dakota": true, "sd": true,
	"tennessee": true, "tn": true,
	"texas": true, "tx": true,
	"utah": true, "ut": true,
	"vermont": true, "vt": true,
	"virginia": true, "va": true,
	"washington": true, "wa": true,
	"west virginia": true, "wv": true,
	"wisconsin": true, "wi": true,
	"wyoming": true, "wy": true,
}

// IsUSState reports whether the term names a US state or abbreviation.
func IsUSState(term string) bool {
	return usStates[term]
}
