// Package provision creates tenants: one directory row plus one fully
// built tenant schema, or neither.
//
// The schema shape is declared as an ordered list of table specs with
// explicit dependency edges, and the DDL is generated from it. That keeps
// the creation order a checked property rather than a convention buried in
// a script.
//
// Provisioning is an administrative operation. It is expected to be rare
// and is not optimized for throughput; races on the same slug are settled
// by the directory's uniqueness constraint.
package provision
