package types

// SetProfileRequest is the body of PUT /v1/profile/{aci}.
type SetProfileRequest struct {
	Version               ProfileKeyVersion `json:"version"`
	UnidentifiedAccessKey AccessKey         `json:"unidentifiedAccessKey"`
}

// CredentialReply is the body returned for a profile credential request.
// Credential holds a base64 serialised credential response.
type CredentialReply struct {
	Credential string `json:"credential"`
}

// ParamsReply describes the parameters an issuer serves.
type ParamsReply struct {
	Environment Environment `json:"environment"`
	ParamsID    string      `json:"paramsId"`
	Params      string      `json:"params"`
}
