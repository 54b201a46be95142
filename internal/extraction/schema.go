package extraction

import "google.golang.org/genai"

// extractionSchema constrains the model to the exact shape the engine
// consumes: a map of field names to raw spoken values plus an optional
// yes/no confirmation signal.
var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"fields": {
			Type:        genai.TypeObject,
			Description: "Field values the caller stated in this utterance, keyed by field name. Omit fields the caller did not address.",
			Properties: map[string]*genai.Schema{
				"consent":        {Type: genai.TypeString, Description: "yes or no"},
				"first_name":     {Type: genai.TypeString},
				"last_name":      {Type: genai.TypeString},
				"phone":          {Type: genai.TypeString},
				"email":          {Type: genai.TypeString},
				"contact_method": {Type: genai.TypeString, Description: "call, text or email"},
				"state":          {Type: genai.TypeString, Description: "two letter US state code"},
				"zip":            {Type: genai.TypeString, Description: "five digit ZIP code"},
				"land_status":    {Type: genai.TypeString, Description: "own, buying, family_land, gifted_land, renting or not_yet"},
				"land_value":     {Type: genai.TypeString, Description: "estimated land value as spoken"},
				"home_type":      {Type: genai.TypeString, Description: "single_wide, double_wide, modular or not_sure"},
				"bedrooms":       {Type: genai.TypeString},
				"timeline":       {Type: genai.TypeString, Description: "purchase timeline as spoken"},
				"credit_range":   {Type: genai.TypeString, Description: "credit score or range as spoken"},
				"budget_range":   {Type: genai.TypeString},
				"down_payment":   {Type: genai.TypeString},
				"contact_time":   {Type: genai.TypeString, Description: "preferred contact time as spoken"},
				"co_applicant":   {Type: genai.TypeString, Description: "yes or no"},
				"military":       {Type: genai.TypeString, Description: "yes or no"},
			},
		},
		"confirmation": {
			Type:        genai.TypeString,
			Description: "yes if the caller confirmed the value just read back, no if they rejected it, empty otherwise.",
			Enum:        []string{"", "yes", "no"},
		},
	},
	Required: []string{"fields"},
}
