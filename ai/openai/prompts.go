package openai

const taggingResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "tags": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "tag": {
            "type": "string",
            "pattern": "^[a-z0-9-]+( [a-z0-9-]+){0,2}$"
          },
          "importance": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["tag", "importance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["tags"],
  "additionalProperties": false
}`

const taggingPromptTemplate = `Extract the keywords that describe what a public procurement tender is buying and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + taggingResponseSchema + `

Rules:
- Tags must be lowercase, 1-3 words, singular form only.
- Tags name goods, works or services being procured (for example "laptop", "road construction", "audit").
- Do not tag the issuing organization, the location, dates, lot numbers or bid procedure words such as "bid", "tender" or "invitation".
- Importance is an integer from 1 (peripheral) to 10 (the main item procured).
- Include only items that are explicitly mentioned or clearly implied by the text. Do not hallucinate.
- If nothing can be identified, return "tags": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Ministry of Education invites bidders for the supply of laptops and projectors for secondary schools"
Output:
{
  "tags": [
    {"tag":"laptop","importance":10},
    {"tag":"projector","importance":8},
    {"tag":"school equipment","importance":6}
  ]
}

Example:
Input: "Construction of 12 km gravel road including drainage structures"
Output:
{
  "tags": [
    {"tag":"road construction","importance":10},
    {"tag":"gravel road","importance":9},
    {"tag":"drainage","importance":7}
  ]
}`

// buildTaggingPrompt returns the system prompt for tender tagging.
func buildTaggingPrompt() string {
	return taggingPromptTemplate
}
