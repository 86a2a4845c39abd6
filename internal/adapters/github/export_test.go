package github

// SetEndpointsForTest points the source at fake API and download hosts.
func (s *Source) SetEndpointsForTest(apiBase, downloadBase string) {
	s.apiBase = apiBase
	s.downloadBase = downloadBase
}

// SetTokenForTest overrides the authentication token.
func (s *Source) SetTokenForTest(token string) {
	s.token = token
}
