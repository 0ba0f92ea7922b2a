// Copyright 2015 Google Inc.
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

// Package wenyan implements the front end of a Wenyan (文言) interpreter:
// a lexer, a compound-numeral decoder, a token-stream macro expander, a
// recursive-descent parser, and the AST they produce. A small tree-walking
// evaluator is included to give the AST's semantic contract somewhere to
// run; a transpiler could consume the same AST instead.
//
// The pipeline is one-shot: Lex, Parse, and Evaluator.Run each take the complete
// input and run to completion or report the first error. There is no
// incremental or streaming mode and no error recovery past the first
// failure, by design (see the package-level Config for the few knobs that
// do exist).
package wenyan
