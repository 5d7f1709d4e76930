// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package agent runs the backend side of a chat turn.
//
// A turn has three steps:
//
//  1. Extract: read the uploaded file (when there is one) into text, or note
//     a YouTube link in the message.
//  2. Classify: ask the model for the user's intent as a JSON object.
//  3. Respond: ambiguous requests get the model's clarifying question;
//     everything else runs a task-specific instruction.
package agent
