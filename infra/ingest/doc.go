// Package ingest reads the departure and yard-plan CSV tables into the
// core model. It is a thin collaborator: cells are delivered raw and all
// noisy-data policy stays in core/staging, except for structural problems
// (a plan without a time column) which are fatal here.
package ingest
