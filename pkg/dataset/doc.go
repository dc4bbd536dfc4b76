// Package dataset loads word-usage records and turns them into layout items.
//
// The primary input is the CSV produced by the script analysis step, one row
// per (character, word) pair:
//
//	character,season,word,count,uniqueness_score
//	Sheldon,1,bazinga,12,3.41
//	Penny,1,sweetie,9,2.87
//
// Columns are matched by header name, so their order does not matter.
// "character", "word" and "count" are required; "season", "id" and
// "uniqueness_score" are optional. The per-show file simply omits the season
// column.
//
// A JSON form is also accepted, mainly for the HTTP API:
//
//	[{"category": "Sheldon", "label": "bazinga", "weight": 12}]
//
// # Filtering
//
// [Filter] narrows a record set to one season, an allowlist of characters,
// and the top-N words per character:
//
//	recs, _ := dataset.ImportCSV("main_cast_unique_words_seasons.csv")
//	recs = dataset.Filter{Season: 3, Limit: 25}.Apply(recs)
//	items := dataset.ToItems(recs)
package dataset
