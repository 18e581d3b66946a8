// Package token defines lexical token kinds and trivia for the stylic
// extractor's JS/JSX subset.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments are leading Trivia and never appear in the main token stream.
//   - @stylic directives live inside comment trivia (TriviaDirective) and are
//     attached to the token that follows the comment.
//   - JSX text runs are produced on demand by the lexer's JSX mode; the main
//     token stream never contains them.
package token
