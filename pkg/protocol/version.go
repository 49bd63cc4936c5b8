package protocol

import (
	"encoding/json"
	"fmt"
)

// NetworkVersion identifies an Archipelago protocol version as a
// major.minor.build triple.
//
// On the wire the object carries an extra fixed "class":"Version" field that
// distinguishes it from a generic JSON object; the field is emitted on
// marshal and ignored on unmarshal.
type NetworkVersion struct {
	Major int64 `json:"major"`
	Minor int64 `json:"minor"`
	Build int64 `json:"build"`
}

// SupportedVersion is the protocol version this client implements. It is
// sent on every Connect request. The client does not reject a mismatched
// server version; it only reports what the server advertises.
var SupportedVersion = NetworkVersion{Major: 0, Minor: 4, Build: 5}

// String returns the dotted form, e.g. "0.4.5".
func (v NetworkVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// MarshalJSON emits the version triple with the fixed class discriminator.
func (v NetworkVersion) MarshalJSON() ([]byte, error) {
	type wire struct {
		Major int64  `json:"major"`
		Minor int64  `json:"minor"`
		Build int64  `json:"build"`
		Class string `json:"class"`
	}
	return json.Marshal(wire{
		Major: v.Major,
		Minor: v.Minor,
		Build: v.Build,
		Class: "Version",
	})
}

// UnmarshalJSON reads the version triple, tolerating the presence or absence
// of the class discriminator.
func (v *NetworkVersion) UnmarshalJSON(data []byte) error {
	type plain NetworkVersion
	return json.Unmarshal(data, (*plain)(v))
}
