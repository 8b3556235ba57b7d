package classify

import (
	"strings"

	"github.com/queryscan/queryscan/internal/model"
)

// Rule is one row of the device-classification table. A module name
// containing any of the keywords takes the row's classification.
type Rule struct {
	// Keywords are substrings tested against the module name.
	Keywords []string

	// Classification is the device type and bucket assigned on match.
	Classification model.DeviceClassification
}

// DefaultRules is the ordered device-classification table. Row order is
// load-bearing: "cluster" must be tested after "host" so host_cluster-ish
// names stay compute hosts, and the default row is the implicit tail.
var DefaultRules = []Rule{
	{
		Keywords: []string{"guest", "vm"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeVM,
			InfraBucket: model.InfraBucketCompute,
		},
	},
	{
		Keywords: []string{"host", "esxi"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeESXi,
			InfraBucket: model.InfraBucketCompute,
		},
	},
	{
		Keywords: []string{"cluster"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeCluster,
			InfraBucket: model.InfraBucketCompute,
		},
	},
	{
		Keywords: []string{"appliance", "vcsa"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeAppliance,
			InfraBucket: model.InfraBucketCompute,
		},
	},
	{
		Keywords: []string{"folder"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeFolder,
			InfraBucket: model.InfraBucketManagement,
		},
	},
	{
		Keywords: []string{"datastore"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeDatastore,
			InfraBucket: model.InfraBucketStorage,
		},
	},
	{
		Keywords: []string{"datacenter"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeDatacenter,
			InfraBucket: model.InfraBucketManagement,
		},
	},
	{
		Keywords: []string{"network", "dvs", "portgroup"},
		Classification: model.DeviceClassification{
			DeviceType:  model.DeviceTypeNetwork,
			InfraBucket: model.InfraBucketNetwork,
		},
	},
}

// defaultClassification is assigned when no rule matches.
var defaultClassification = model.DeviceClassification{
	DeviceType:  model.DeviceTypeResource,
	InfraBucket: model.InfraBucketCompute,
}

// Device classifies a module name using the default rule table.
func Device(moduleName string) model.DeviceClassification {
	return DeviceWithRules(moduleName, DefaultRules)
}

// DeviceWithRules classifies a module name against an explicit rule table,
// first match wins. Config-file overrides prepend rows to the defaults.
func DeviceWithRules(moduleName string, rules []Rule) model.DeviceClassification {
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(moduleName, kw) {
				return rule.Classification
			}
		}
	}
	return defaultClassification
}
