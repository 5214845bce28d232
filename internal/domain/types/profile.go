package types

// Profile is what the issuer knows about an account: the versions of the
// profile key it has seen and the access key that authorises unidentified
// requests for it.
type Profile struct {
	Aci       Aci                 `json:"aci"`
	Versions  []ProfileKeyVersion `json:"versions"`
	AccessKey AccessKey           `json:"access_key"`
	UpdatedAt int64               `json:"updated_at"`
}

// HasVersion reports whether v has been registered for the profile.
func (p Profile) HasVersion(v ProfileKeyVersion) bool {
	for _, have := range p.Versions {
		if have == v {
			return true
		}
	}
	return false
}
