// Code style follows mockgen's generated output (github.com/golang/mock),
// hand-written here since clusterReader is unexported and mockgen is not
// run as part of this build.

package fat16

import (
	"reflect"

	"github.com/golang/mock/gomock"
)

// MockClusterReader is a gomock-style mock of clusterReader.
type MockClusterReader struct {
	ctrl     *gomock.Controller
	recorder *MockClusterReaderMockRecorder
}

// MockClusterReaderMockRecorder is the mock recorder for MockClusterReader.
type MockClusterReaderMockRecorder struct {
	mock *MockClusterReader
}

// NewMockClusterReader creates a new mock instance.
func NewMockClusterReader(ctrl *gomock.Controller) *MockClusterReader {
	mock := &MockClusterReader{ctrl: ctrl}
	mock.recorder = &MockClusterReaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClusterReader) EXPECT() *MockClusterReaderMockRecorder {
	return m.recorder
}

func (m *MockClusterReader) readRootDir() ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "readRootDir")
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockClusterReaderMockRecorder) readRootDir() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "readRootDir", reflect.TypeOf((*MockClusterReader)(nil).readRootDir))
}

func (m *MockClusterReader) readChain(chain ClusterChain) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "readChain", chain)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockClusterReaderMockRecorder) readChain(chain interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "readChain", reflect.TypeOf((*MockClusterReader)(nil).readChain), chain)
}

func (m *MockClusterReader) ResolveChain(firstCluster uint16) (ClusterChain, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveChain", firstCluster)
	ret0, _ := ret[0].(ClusterChain)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockClusterReaderMockRecorder) ResolveChain(firstCluster interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveChain", reflect.TypeOf((*MockClusterReader)(nil).ResolveChain), firstCluster)
}
