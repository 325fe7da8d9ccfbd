// Package proofcheck verifies that a rendered marketing email matches a
// reference approval document. It extracts a normalized content model from
// the email markup (text, call-to-action candidates, links, footer,
// unsubscribe signal), evaluates it against a configurable set of
// deterministic rules, and aggregates the results, together with an
// optional AI-based semantic comparison, into a structured pass/fail
// report with itemized issues.
//
// This package contains domain types, pure engine components, and
// interfaces following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, gemini/).
package proofcheck
