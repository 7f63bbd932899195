// Package agents implements the specialist analyzers and the judge that
// adjudicates their findings. Specialists are blind by design: each one
// receives only its own domain's log slice and never sees another domain's
// evidence.
package agents

import "github.com/warroom/warroom/internal/database"

// Domain identifies a specialist's area of expertise. It is a closed enum:
// each variant carries the specialist's identity, its category, its log
// slice selector, and its role preamble.
type Domain int

const (
	DomainNetwork Domain = iota
	DomainDatabase
	DomainCode
)

// AllDomains returns every specialist domain.
func AllDomains() []Domain {
	return []Domain{DomainNetwork, DomainDatabase, DomainCode}
}

// DomainForCategory maps a dispatchable incident category to its domain.
func DomainForCategory(category database.Category) (Domain, bool) {
	switch category {
	case database.CategoryNetwork:
		return DomainNetwork, true
	case database.CategoryDatabase:
		return DomainDatabase, true
	case database.CategoryCode:
		return DomainCode, true
	}
	return 0, false
}

// AgentName returns the specialist's identity as it appears in analyses
// and in the triggered_agents list of stored incidents.
func (d Domain) AgentName() string {
	switch d {
	case DomainNetwork:
		return "Network Engineer"
	case DomainDatabase:
		return "DBA"
	case DomainCode:
		return "Code Auditor"
	}
	return "Unknown"
}

// Category returns the incident category this domain analyzes.
func (d Domain) Category() database.Category {
	switch d {
	case DomainNetwork:
		return database.CategoryNetwork
	case DomainDatabase:
		return database.CategoryDatabase
	case DomainCode:
		return database.CategoryCode
	}
	return database.CategoryUnknown
}

// SelectLogs returns this domain's slice of an incident's log bundle.
// This is the blind-specialist boundary: no other field is ever exposed.
func (d Domain) SelectLogs(logs database.LogBundle) string {
	switch d {
	case DomainNetwork:
		return logs.Network
	case DomainDatabase:
		return logs.DB
	case DomainCode:
		return logs.AppCodeDiff
	}
	return ""
}

// AllClearContext is the placeholder narrative used when a specialist is
// forced to run with zero active incidents in its category.
func (d Domain) AllClearContext() string {
	switch d {
	case DomainNetwork:
		return "No active network incidents detected. System appears healthy from network perspective. All network connections stable, no timeouts or errors reported."
	case DomainDatabase:
		return "No active database incidents detected. Database connections and queries appear normal. No deadlocks, connection pool issues, or slow queries reported."
	case DomainCode:
		return "No active code-related incidents detected. Application code appears stable. No syntax errors, memory leaks, or infinite loops reported."
	}
	return ""
}

// Role returns the specialist's role preamble: the domain expertise
// description prepended to every analysis prompt.
func (d Domain) Role() string {
	switch d {
	case DomainNetwork:
		return networkRole
	case DomainDatabase:
		return dbaRole
	case DomainCode:
		return codeAuditorRole
	}
	return ""
}

const dbaRole = `You are a Database Administrator (DBA) specialist analyzing database logs.

Your expertise includes:
- Database locks and deadlocks
- Query performance issues
- Transaction problems
- Connection pool exhaustion
- Index and query optimization issues

When analyzing logs, look for:
- Lock wait times and deadlock errors
- Slow query patterns
- Transaction conflicts
- Connection timeouts
- Resource contention

Provide specific evidence from the logs and assess the severity (Critical, Warning, or Healthy).
Be thorough but concise. Focus on actionable insights.`

const networkRole = `You are a Network Engineer specialist analyzing network traces and logs.

Your expertise includes:
- Network latency and timeouts
- Load balancer issues
- Connection problems
- Gateway errors (502, 503, 504)
- DNS resolution issues
- Bandwidth and throughput problems

When analyzing logs, look for:
- Timeout errors (504 Gateway Timeout, etc.)
- Response time anomalies
- Connection failures
- Load balancer errors
- Network congestion indicators

Provide specific evidence from the logs and assess the severity (Critical, Warning, or Healthy).
Be thorough but concise. Focus on actionable insights.`

const codeAuditorRole = `You are a Code Auditor specialist analyzing code changes and diffs.

Your expertise includes:
- Logic errors in code
- Performance anti-patterns
- Race conditions
- Resource leaks
- Concurrency issues
- Recent code changes that could cause incidents

When analyzing code diffs, look for:
- Blocking operations in critical paths
- Missing error handling
- Performance bottlenecks
- Thread safety issues
- Resource management problems
- Changes that could cause timeouts or deadlocks

Provide specific evidence from the code diff and assess the severity (Critical, Warning, or Healthy).
Be thorough but concise. Focus on actionable insights.`
