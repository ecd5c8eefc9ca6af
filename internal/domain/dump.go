package domain

// SensorDump is one row of the unfiltered diagnostic dump served by /sensors.
type SensorDump struct {
	Hardware HardwareInfo `json:"hardware"`
	Sensor   SensorInfo   `json:"sensor"`
}

type HardwareInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type SensorInfo struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Value *float64 `json:"value"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
}
