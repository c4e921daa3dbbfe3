package planner

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) chatSystemInstruction() string {
	lines := []string{
		"You are a friendly and helpful AI assistant for a skill learning planner app.",
		"Your primary goals are:",
		"1. Engage in natural conversation with the user about their learning interests.",
		"2. If the user expresses a desire to create a learning plan, help them clarify the specific skill, desired duration, preferred start date, learning style (optional), preferred study time (optional), and daily study hours (optional). Ask questions one by one if needed.",
		"3. Once sufficient details are gathered, summarize them and inform the user that plan generation can now be triggered.",
		"4. After a plan is generated, discuss it with the user if they have questions or want refinements.",
		"5. You can also answer general questions or chat about learning.",
		fmt.Sprintf("The current date is %s. Use this for context if the user mentions relative dates like 'next week'.", c.now().Format("2006-01-02")),
	}
	return strings.Join(lines, " ")
}

// Chat sends the user's message with the conversation history and returns the
// assistant's conversational reply.
func (c *Client) Chat(ctx context.Context, userMessage string, history []Content) (string, error) {
	var contents []Content
	if len(history) == 0 {
		// Seed the role when the frontend has no history yet.
		contents = append(contents,
			Content{Role: "user", Parts: []Part{{Text: c.chatSystemInstruction()}}},
			Content{Role: "model", Parts: []Part{{Text: "Okay, I understand my role. How can I help you today?"}}},
		)
	}
	contents = append(contents, history...)
	contents = append(contents, Content{Role: "user", Parts: []Part{{Text: userMessage}}})

	reply, err := c.generate(ctx, contents)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
