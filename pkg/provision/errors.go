package provision

import "errors"

var (
	// ErrProvisioningFailed is returned when the tenant schema could not be
	// fully materialized. The directory row created for the attempt has been
	// removed; the underlying cause is attached for diagnostics and must not
	// be shown to non-administrative callers.
	ErrProvisioningFailed = errors.New("tenant provisioning failed")

	// ErrDeprovisioningIncomplete is returned when the directory row was
	// removed but the tenant schema could not be dropped. The schema is
	// orphaned and needs manual cleanup; no directory entry points at it.
	ErrDeprovisioningIncomplete = errors.New("tenant deprovisioning incomplete")
)
