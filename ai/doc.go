// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the embedding service used by talentrank.
//
// The ranking engine never talks to a concrete model. It depends on the
// Embedder interface defined here, so the embedding technology can be swapped
// or replaced by a deterministic double in tests.
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//     (OpenAI, Ollama, LocalAI, vLLM) through langchaingo
//   - ai/mock: deterministic embedders for unit tests and offline use
//
// # Decorators
//
// Two decorators wrap any Embedder:
//
//   - NewRetryingEmbedder retries failed calls with exponential backoff
//   - NewCachingEmbedder stores vectors in a storage.VectorCache keyed by
//     model and text, so re-uploading a sheet does not re-embed it
//
// # Usage Example
//
//	cfg := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434/v1"),
//	    ai.WithEmbeddingModel("all-minilm"),
//	)
//	embedder, err := openai.NewEmbedder(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	embedder = ai.NewRetryingEmbedder(embedder, 3, time.Second)
//
//	vectors, err := embedder.EmbedTexts(ctx, []string{"backend engineer"})
package ai
