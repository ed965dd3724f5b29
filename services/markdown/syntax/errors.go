// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package syntax

import "errors"

// Sentinel errors for parse-level failures.
//
// These cover precondition violations only. A node that matches no highlight
// rule, or a heading candidate with a missing child, is never an error
// anywhere in this service; those conditions are silently skipped by the
// consumers.
var (
	// ErrGrammarNotReady indicates that one or both grammars failed to
	// initialize. Parse refuses to run until both are available; hosts
	// should gate on DualParser.Ready before exposing the feature.
	ErrGrammarNotReady = errors.New("markdown grammars not ready")

	// ErrFileTooLarge is returned when input content exceeds the maximum
	// configured document size.
	ErrFileTooLarge = errors.New("document exceeds maximum size limit")

	// ErrInvalidContent indicates the provided content is not valid UTF-8
	// and cannot be parsed.
	ErrInvalidContent = errors.New("invalid content")

	// ErrParseFailed indicates that tree-sitter failed to produce a tree.
	// With well-formed preconditions this does not occur; the grammar is
	// total over UTF-8 input.
	ErrParseFailed = errors.New("parse failed")
)
