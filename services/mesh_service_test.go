package services

import (
	"testing"

	"github.com/GrainArc/TinSurvey/Tin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoints() []Tin.Point3D {
	return []Tin.Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 5, Y: 0, Z: 0},
		{X: 0, Y: 5, Z: 0},
		{X: 5, Y: 5, Z: 0},
	}
}

func TestCreateAndGetSession(t *testing.T) {
	service := NewMeshService()

	session, err := service.CreateSession(testPoints())
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	found, ok := service.GetSession(session.ID)
	require.True(t, ok)
	assert.Same(t, session, found)

	assert.Equal(t, 4, session.Mesh.ActiveCount())
	assert.Len(t, session.Mesh.ActiveTriangles(), 2)
	assert.Equal(t, 1, service.SessionCount())
}

func TestGetSessionUnknownID(t *testing.T) {
	service := NewMeshService()
	_, ok := service.GetSession("no-such-session")
	assert.False(t, ok)
}

func TestDeleteSession(t *testing.T) {
	service := NewMeshService()
	session, err := service.CreateSession(testPoints())
	require.NoError(t, err)

	assert.True(t, service.DeleteSession(session.ID))
	assert.False(t, service.DeleteSession(session.ID), "重复删除返回false")
	_, ok := service.GetSession(session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, service.SessionCount())
}

func TestSessionsAreIndependent(t *testing.T) {
	service := NewMeshService()

	first, err := service.CreateSession(testPoints())
	require.NoError(t, err)
	second, err := service.CreateSession(testPoints())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	require.True(t, first.Mesh.DeletePointByActiveIndex(0))
	assert.Equal(t, 3, first.Mesh.ActiveCount())
	assert.Equal(t, 4, second.Mesh.ActiveCount(), "会话之间互不影响")
}

func TestCreateSessionFewPoints(t *testing.T) {
	service := NewMeshService()

	// 不足3个点是合法状态，只是没有三角形
	session, err := service.CreateSession([]Tin.Point3D{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, session.Mesh.ActiveCount())
	assert.Empty(t, session.Mesh.ActiveTriangles())
}
