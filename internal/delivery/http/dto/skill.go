package dto

type SkillExtractRequest struct {
	Text string `json:"text"`
}

type SkillExtractResponse struct {
	Skills []string `json:"skills"`
}
