/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package result extracts JSON objects from model responses.

Generation backends asked for structured output usually return bare JSON, but
they also wrap it in markdown fences or surround it with prose. ExtractObject
recovers the first top-level JSON object from such text.

# Algorithm

  - Surrounding whitespace is trimmed.
  - If the text opens with a ``` fence, the fence line (and its language tag)
    is removed, along with a trailing closing fence when present.
  - Starting at the first '{', braces are counted until the depth returns to
    zero. That span is the candidate.
  - The candidate is returned only if it is valid JSON. Anything after the
    span is ignored and no later object is considered.

Text without a '{', with unbalanced braces, or whose first balanced span is
not valid JSON yields ("", false). Nothing in this package returns an error
for malformed input except Extract, which must report why it could not
produce a value.

# Usage

	raw := "```json\n{\"content\": \"plan\"}\n```"
	if obj, ok := result.ExtractObject(raw); ok {
		fmt.Println(obj) // {"content": "plan"}
	}

	type Plan struct {
		Content string `json:"content"`
	}
	plan, err := result.Extract[Plan](raw)
*/
package result
