package ai

import (
	"fmt"
	"strings"
	"time"
)

// DefaultAssistantPrompt is used when no system prompt is configured.
const DefaultAssistantPrompt = "You are a friendly personal finance assistant inside a Telegram app. " +
	"Answer questions about the user's income and spending using only the transaction data you are given. " +
	"Be concise, use the user's language, and format money with two decimals. " +
	"If the data does not answer the question, say so instead of guessing."

func buildParsePrompt(text string, categories []CategoryOption, today time.Time) string {
	var expense, income []string
	for _, c := range categories {
		if c.Type == TypeIncome {
			income = append(income, c.Name)
		} else {
			expense = append(expense, c.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Extract financial transactions from the user's message.\n\n")
	fmt.Fprintf(&b, "Today is %s.\n", today.Format(dateLayout))
	fmt.Fprintf(&b, "Expense categories: %s.\n", strings.Join(expense, ", "))
	fmt.Fprintf(&b, "Income categories: %s.\n\n", strings.Join(income, ", "))
	b.WriteString("Return a JSON array. Each element has:\n" +
		"- \"type\": \"income\" or \"expense\"\n" +
		"- \"amount\": positive number\n" +
		"- \"category_name\": exactly one of the categories above for that type\n" +
		"- \"description\": short description\n" +
		"- \"date\": \"YYYY-MM-DD\", today unless the message names another day\n\n" +
		"Rules:\n" +
		"- If the message contains no transactions, return [].\n" +
		"- Output must begin with \"[\" and end with \"]\". No markdown.\n\n")
	b.WriteString("Message: ")
	b.WriteString(text)
	return b.String()
}
