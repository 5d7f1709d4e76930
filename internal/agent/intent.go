// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentSummarize   Intent = "summarize"
	IntentSentiment   Intent = "sentiment"
	IntentCodeExplain Intent = "code_explain"
	IntentChat        Intent = "chat"
	IntentAmbiguous   Intent = "ambiguous"
)

// ActionAskClarification is the action reported for ambiguous requests.
const ActionAskClarification = "ask_clarification"

// defaultClarification is sent when the model flags a request as ambiguous
// without saying what is missing.
const defaultClarification = "Could you tell me a bit more about what you would like me to do?"

const classifyPrompt = `You classify intent: summarize, sentiment, code_explain, chat, ambiguous.
If unclear, answer ambiguous and put the question to ask the user in missing_info.
Output JSON only:
{"intent": "...", "missing_info": "..."}`

// instructions maps each actionable intent to the task given to the model.
var instructions = map[Intent]string{
	IntentSummarize:   "Summarize in 1 line, 3 bullets, 5 sentences.",
	IntentSentiment:   "Sentiment: label, confidence, justification.",
	IntentCodeExplain: "Explain code: what it does, bugs, time complexity.",
	IntentChat:        "Helpful answer.",
}

// Instruction returns the task text for intent.
func Instruction(intent Intent) string {
	if s, ok := instructions[intent]; ok {
		return s
	}
	return "Help the user."
}

// Classification is the decoded classifier reply.
type Classification struct {
	Intent      Intent `json:"intent"`
	MissingInfo string `json:"missing_info"`
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseClassification extracts the first JSON object from a model reply.
// Replies without a usable object classify as chat.
func ParseClassification(reply string) Classification {
	fallback := Classification{Intent: IntentChat}

	raw := jsonObject.FindString(reply)
	if raw == "" {
		return fallback
	}
	var c struct {
		Intent      string  `json:"intent"`
		MissingInfo *string `json:"missing_info"`
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return fallback
	}

	out := Classification{Intent: Intent(strings.ToLower(strings.TrimSpace(c.Intent)))}
	if out.Intent == "" {
		out.Intent = IntentChat
	}
	if c.MissingInfo != nil {
		out.MissingInfo = strings.TrimSpace(*c.MissingInfo)
	}
	return out
}
