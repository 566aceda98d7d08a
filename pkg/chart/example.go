package chart

import "encoding/json"

// exampleRecords is the sample data set shipped with the tool.
var exampleRecords = []Record{
	{Ticker: "CHEK", Name: "Check-cap", Logo: logoURL("CHEK"), Driver: "Merger deal with MBody AI; cancer diagnostics focus", ChangePct: "+184.18%"},
	{Ticker: "HSDT", Name: "Helius Medical", Logo: logoURL("HSDT"), Driver: "PIPE financing; launched Sol Treasury with $500M", ChangePct: "+141.67%"},
	{Ticker: "NAOV", Name: "NanoVibronix", Logo: logoURL("NAOV"), Driver: "Patent for medical navigation; home healthcare devices", ChangePct: "+64.87%"},
	{Ticker: "OPI", Name: "Office Properties", Logo: logoURL("OPI"), Driver: "ABS issuance surged; dividend suspended", ChangePct: "+59.71%"},
	{Ticker: "RCEL", Name: "AVITA Medical", Logo: logoURL("RCEL"), Driver: "RECELL GO gained EU CE mark; Europe expansion", ChangePct: "+48.25%"},
	{Ticker: "GLUE", Name: "Monte Rosa", Logo: logoURL("GLUE"), Driver: "$5.7B Novartis drug partnership", ChangePct: "+44.07%"},
	{Ticker: "WOLF", Name: "Wolfspeed", Logo: logoURL("WOLF"), Driver: "Restructuring cut debt 70%; SiC semiconductor focus", ChangePct: "+27.04%"},
	{Ticker: "GPUS", Name: "Hyperscale Data", Logo: logoURL("GPUS"), Driver: "NVIDIA GPU expansion; $100M Bitcoin fund", ChangePct: "+22.43%"},
}

func logoURL(ticker string) string {
	return "https://cdn.ainvest.com/icon/us/" + ticker + ".png"
}

// Example returns a fresh copy of the sample request (eight records,
// which paginate into two pages at the default capacity).
func Example() *Request {
	return &Request{
		TitleMain: "Sep 15",
		TitleSub:  "Big Movers & Drivers",
		Records:   append([]Record(nil), exampleRecords...),
	}
}

// ExampleJSON returns the sample request as indented JSON.
func ExampleJSON() []byte {
	data, _ := json.MarshalIndent(Example(), "", "  ")
	return append(data, '\n')
}
