package mcpserver

// EnhancementFormatContract describes the enhancement dataset format that
// LLM consumers should follow when contributing enhancement records.
const EnhancementFormatContract = `# Castellan Enhancement Dataset Contract

Enhancement datasets are JSON files placed in the data directory's
` + "`enhancements/`" + ` folder. Each file holds an **array** of records keyed by
castle id. On the next ` + "`castellan enhance`" + ` run they are merged into the
collection with the precedence: enhancement value, else existing value,
else built-in default.

## Record shape

` + "```" + `json
[
  {
    "id": "neuschwanstein_castle",
    "year_built": "1869",
    "detailed_description": "Prose paragraph for the castle page.",
    "current_status": {
      "condition": "Excellent",
      "ownership": "Bavarian Palace Department",
      "function": "Museum"
    },
    "opening_hours": {
      "seasonal": "April-October 9:00-18:00, winter 10:00-16:00"
    },
    "admission_fee": "EUR 21 adults",
    "accessibility": "Shuttle and carriage options; interior has stairs",
    "preservation_efforts": {
      "status": "Active restoration programme",
      "organization": "Free State of Bavaria",
      "recentWork": ["Facade restoration 2017-2022"]
    },
    "tourism_details": {
      "annualVisitors": "1.4 million",
      "facilities": ["Visitor centre", "Guided tours"]
    },
    "unesco": {"listed": false},
    "cultural_significance": "One paragraph of interpretive text.",
    "legends": [
      {"title": "The Swan King", "narrative": "One or two sentences."}
    ],
    "notable_battles": [
      {"name": "Siege of ...", "participants": "A vs. B", "significance": "..."}
    ],
    "ruler_biographies": [
      {"fullName": "Ludwig II", "lifespan": "1845-1886", "epithet": "'The Swan King'"}
    ]
  }
]
` + "```" + `

## Rules

1. **` + "`id`" + ` is required** and must match an id in the collection; records
   with unknown ids are ignored by the merge.
2. **Top-level keys are snake_case** (dataset convention); nested display
   structs use the collection's camelCase fields.
3. Omit fields you have no data for. Empty strings are treated as absent.
4. Arrays **replace** the existing value wholesale; the merge never appends,
   so re-running it is idempotent.
5. Text values are plain prose. No Markdown, no HTML.
6. Encoding is UTF-8.
`
