// Package store provides durable storage for scan recommendations.
//
// Uses SQLite with WAL mode. The only mutation path is Replace: delete
// every recommendation for an owner, then insert the new ranked set, in
// one transaction. Rows therefore always reflect exactly one completed
// scan per owner; there is no merge across scans.
//
// Insertion order is preserved explicitly in the pos column so ORDER
// BY-free consumers still see the ranked order.
package store
