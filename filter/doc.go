// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package filter decides whether a chat message is an acceptable sprint entry.

# Pipeline

Validate runs three checks in order and stops at the first failure:

 1. Word count: 1 to 3 whitespace-separated words. Empty text fails here.
 2. Profanity: go-away's default dictionary, plus Russian obscenities
    matched per word.
 3. Language: only en, ru, es, fr, de, uk and it pass. Latin or Cyrillic
    words vote for embedded word lists; ties and unknown words are decided
    by lingua-go. Text with no detectable script fails.

	v := filter.NewDefaultValidator()
	verdict, err := v.Validate("кот и собака")

Failures are *Rejection values wrapping ErrInvalidInput. Their Reason is the
message shown to the user.

# Collaborators

Validator depends on two narrow interfaces so tests can swap them:

  - Detector: Detect(text) string
  - ProfanityChecker: IsProfane(text) bool
*/
package filter
