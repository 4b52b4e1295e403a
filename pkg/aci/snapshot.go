package aci

// ToolName identifies this client in objects it creates on the controller.
const ToolName = "aci-client"

// configExportP attribute values.
const (
	AdminStateTriggered     = "triggered"
	AdminStateUntriggered   = "untriggered"
	FormatJSON              = "json"
	FormatXML               = "xml"
	SnapshotPolicyName      = "aci-client-snapshot"
	SnapshotPolicyDN        = "uni/fabric/configexp-" + SnapshotPolicyName
	DefaultSnapshotDescr    = "Snapshot"
	snapshotIncludeSecure   = "yes"
	snapshotMaxCountDefault = "global-limit"
)

// SnapshotOptions customises a configuration export. Nil fields take their
// defaults: the description "Snapshot" and an empty target (whole fabric).
type SnapshotOptions struct {
	Description *string
	TargetDN    *string
}

// SnapshotDescription returns the descr attribute for the given description.
func SnapshotDescription(description *string) string {
	descr := DefaultSnapshotDescr
	if description != nil {
		descr = *description
	}

	return "by " + ToolName + " - " + descr
}

// NewSnapshotObject builds the configExportP object that triggers a one-shot
// JSON configuration export.
func NewSnapshotObject(opts SnapshotOptions) ClassWrapper {
	targetDN := ""
	if opts.TargetDN != nil {
		targetDN = *opts.TargetDN
	}

	return NewClassWrapper(ClassConfigExport, map[string]interface{}{
		"dn":                  SnapshotPolicyDN,
		"name":                SnapshotPolicyName,
		"adminSt":             AdminStateTriggered,
		"format":              FormatJSON,
		"includeSecureFields": snapshotIncludeSecure,
		"maxSnapshotCount":    snapshotMaxCountDefault,
		"descr":               SnapshotDescription(opts.Description),
		"targetDn":            targetDN,
	})
}

// NewSnapshotDocument renders NewSnapshotObject. Keys are emitted in sorted
// order, so equal options always produce identical bytes.
func NewSnapshotDocument(opts SnapshotOptions) ([]byte, error) {
	return EncodeObject(NewSnapshotObject(opts))
}
