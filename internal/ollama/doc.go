// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for the Ollama chat API.
//
// Only non-streaming chat is supported: the agent needs whole replies,
// both for JSON intent classification and for the final answer.
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    BaseURL:      "http://localhost:11434",
//	    DefaultModel: "llama3.2",
//	})
//	resp, err := client.Chat(ctx, "", []ollama.Message{
//	    ollama.NewSystemMessage("Be brief."),
//	    ollama.NewUserMessage("Hello"),
//	})
package ollama
