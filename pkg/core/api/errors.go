// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package api

import "errors"

// ErrEmbeddingUnavailable marks embedding provider failures, including a
// response whose vector count or dimensions do not match the request. The
// caller must not index anything for the affected document.
var ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

// ErrGenerationUnavailable marks transient generation provider failures.
// Surfaced to the user as retryable; never retried automatically.
var ErrGenerationUnavailable = errors.New("generation provider unavailable")

// ErrContentRejected is returned when the provider's safety filter blocks
// a generation. The provider's message is surfaced verbatim so the user can
// rephrase.
var ErrContentRejected = errors.New("generation blocked by content filter")
