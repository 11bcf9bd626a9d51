package cli

import (
	"taskflow-client/internal/collection"
	"taskflow-client/internal/session"
	"taskflow-client/internal/transport"
)

// Backend is everything the shell needs from the remote side.
type Backend interface {
	session.Authority
	ProjectStore() collection.ProjectStore
	TaskStore(projectId string) collection.TaskStore
}

type remoteBackend struct {
	*transport.Client
}

func newRemoteBackend(c *transport.Client) Backend {
	return remoteBackend{Client: c}
}

func (b remoteBackend) ProjectStore() collection.ProjectStore {
	return transport.NewProjectStore(b.Client)
}

func (b remoteBackend) TaskStore(projectId string) collection.TaskStore {
	return transport.NewTaskStore(b.Client, projectId)
}
