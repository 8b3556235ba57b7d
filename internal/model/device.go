package model

// deviceUnknownStr is the string representation for unknown device values.
const deviceUnknownStr = "unknown"

// DeviceType represents the kind of infrastructure device a module manages.
type DeviceType string

// Device type constants.
const (
	// DeviceTypeUnknown represents an unclassified device.
	DeviceTypeUnknown DeviceType = ""
	// DeviceTypeVM represents a virtual machine.
	DeviceTypeVM DeviceType = "VM"
	// DeviceTypeESXi represents an ESXi hypervisor host.
	DeviceTypeESXi DeviceType = "ESXi"
	// DeviceTypeCluster represents a compute cluster.
	DeviceTypeCluster DeviceType = "Cluster"
	// DeviceTypeAppliance represents a vCenter appliance.
	DeviceTypeAppliance DeviceType = "vCenter Appliance"
	// DeviceTypeFolder represents an inventory folder.
	DeviceTypeFolder DeviceType = "Folder"
	// DeviceTypeDatastore represents a datastore.
	DeviceTypeDatastore DeviceType = "Datastore"
	// DeviceTypeDatacenter represents a datacenter.
	DeviceTypeDatacenter DeviceType = "Datacenter"
	// DeviceTypeNetwork represents a network, switch, or portgroup.
	DeviceTypeNetwork DeviceType = "Network"
	// DeviceTypeResource represents a generic managed resource.
	DeviceTypeResource DeviceType = "Resource"
)

// String returns the string representation of the DeviceType.
func (t DeviceType) String() string {
	if t == DeviceTypeUnknown {
		return deviceUnknownStr
	}
	return string(t)
}

// IsValid returns true if this is a known device type.
func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypeVM, DeviceTypeESXi, DeviceTypeCluster, DeviceTypeAppliance,
		DeviceTypeFolder, DeviceTypeDatastore, DeviceTypeDatacenter,
		DeviceTypeNetwork, DeviceTypeResource:
		return true
	default:
		return false
	}
}

// InfraBucket represents the infrastructure bucket a device belongs to.
type InfraBucket string

// Infrastructure bucket constants.
const (
	// InfraBucketUnknown represents an unclassified bucket.
	InfraBucketUnknown InfraBucket = ""
	// InfraBucketCompute groups compute resources.
	InfraBucketCompute InfraBucket = "Compute"
	// InfraBucketManagement groups management resources.
	InfraBucketManagement InfraBucket = "Management"
	// InfraBucketStorage groups storage resources.
	InfraBucketStorage InfraBucket = "Storage"
	// InfraBucketNetwork groups network resources.
	InfraBucketNetwork InfraBucket = "Network"
)

// String returns the string representation of the InfraBucket.
func (b InfraBucket) String() string {
	if b == InfraBucketUnknown {
		return deviceUnknownStr
	}
	return string(b)
}

// IsValid returns true if this is a known infrastructure bucket.
func (b InfraBucket) IsValid() bool {
	switch b {
	case InfraBucketCompute, InfraBucketManagement, InfraBucketStorage,
		InfraBucketNetwork:
		return true
	default:
		return false
	}
}

// DeviceClassification pairs a device type with its infrastructure bucket.
type DeviceClassification struct {
	DeviceType  DeviceType  `json:"device_type"`
	InfraBucket InfraBucket `json:"infra_bucket"`
}
