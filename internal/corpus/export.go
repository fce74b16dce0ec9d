package corpus

import "dialogsynth/internal/dataset"

// ExportXLSX writes one reviewer row per conversation.
func ExportXLSX(path string, convs []Conversation) error {
	header := []string{"call_id", "topic", "task", "media_type", "agent_type", "llm_rating", "turns", "summary"}
	rows := make([][]any, 0, len(convs))
	for _, c := range convs {
		var rating any = ""
		if r, ok := c.Rating(); ok {
			rating = r
		}
		rows = append(rows, []any{
			c.CallID(),
			c.Setting("selected_topic"),
			c.Setting("selected_task"),
			c.MediaType(),
			str(c["agent_type"]),
			rating,
			len(c.Messages()),
			str(c["summary"]),
		})
	}
	return dataset.WriteSheet(path, "Conversations", header, rows)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
