// Package recommend holds the guidance decision rules. Every exported
// function is pure: it reads its arguments and the read-only catalog, never
// mutates them, and never fails on missing or unexpected input.
//
// The flow is Aggregate → ClassifyStream → SelectSubjectCareer → RankColleges.
// Engine bundles the four with a catalog for the HTTP API and the terminal
// wizard.
package recommend
