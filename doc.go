// Package scicalc implements a restricted scientific-calculator expression
// language.
//
// Text typed on a calculator goes through four steps. Normalize rewrites
// calculator notation ("2×3", "2^8", "π", "5!") into canonical text. Parse
// turns canonical text into a syntax tree. An Env validates every node of the
// tree against a closed allow-list of operators, functions, and constants,
// and only then reduces the tree to a number. Nothing outside the allow-list
// is ever evaluated: attribute access, subscripts, strings, assignment, and
// the like parse into nodes that validation rejects.
//
// Angles are radians unless the Env is built with Angle(Degrees). The
// identifiers Ans and ans refer to the last answer supplied to the Env, which
// a Session maintains across evaluations.
package scicalc
