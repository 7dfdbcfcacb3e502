//go:build windows

package voicemeeter

import (
	"fmt"
	"log"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const deviceNameSize = 512

type dllRemote struct {
	kind Kind
	dll  *windows.LazyDLL

	loadOnce sync.Once
	loadErr  error

	login, logout, run, dirty          *windows.LazyProc
	getFloat, setParams                *windows.LazyProc
	inCount, inDesc, outCount, outDesc *windows.LazyProc
}

// New returns a Remote backed by the DLL at dllPath. The DLL is loaded on the
// first Login, so a missing installation surfaces as a login failure.
func New(dllPath string, kind Kind) Remote {
	dll := windows.NewLazyDLL(dllPath)
	return &dllRemote{
		kind:      kind,
		dll:       dll,
		login:     dll.NewProc("VBVMR_Login"),
		logout:    dll.NewProc("VBVMR_Logout"),
		run:       dll.NewProc("VBVMR_RunVoicemeeter"),
		dirty:     dll.NewProc("VBVMR_IsParametersDirty"),
		getFloat:  dll.NewProc("VBVMR_GetParameterFloat"),
		setParams: dll.NewProc("VBVMR_SetParameters"),
		inCount:   dll.NewProc("VBVMR_Input_GetDeviceNumber"),
		inDesc:    dll.NewProc("VBVMR_Input_GetDeviceDescA"),
		outCount:  dll.NewProc("VBVMR_Output_GetDeviceNumber"),
		outDesc:   dll.NewProc("VBVMR_Output_GetDeviceDescA"),
	}
}

func (r *dllRemote) load() error {
	r.loadOnce.Do(func() {
		if err := r.dll.Load(); err != nil {
			r.loadErr = fmt.Errorf("load %s: %w", r.dll.Name, err)
			return
		}
		for _, p := range []*windows.LazyProc{
			r.login, r.logout, r.run, r.dirty, r.getFloat, r.setParams,
			r.inCount, r.inDesc, r.outCount, r.outDesc,
		} {
			if err := p.Find(); err != nil {
				r.loadErr = fmt.Errorf("resolve %s: %w", p.Name, err)
				return
			}
		}
	})
	return r.loadErr
}

func call(p *windows.LazyProc, args ...uintptr) int32 {
	ret, _, _ := p.Call(args...)
	return int32(ret)
}

func (r *dllRemote) Login() error {
	if err := r.load(); err != nil {
		return err
	}
	switch code := call(r.login); {
	case code == 1:
		log.Printf("[remote] Voicemeeter is not running, launching %s", r.kind)
		if code := call(r.run, uintptr(r.kind.launchCode())); code < 0 {
			return &CallError{Func: "VBVMR_RunVoicemeeter", Code: code}
		}
	case code < 0:
		return &CallError{Func: "VBVMR_Login", Code: code}
	}
	return nil
}

func (r *dllRemote) Logout() error {
	if err := r.load(); err != nil {
		return err
	}
	if code := call(r.logout); code < 0 {
		return &CallError{Func: "VBVMR_Logout", Code: code}
	}
	return nil
}

func (r *dllRemote) Shutdown() error {
	return r.setScript("Command.Shutdown=1;")
}

func (r *dllRemote) Dirty() (bool, error) {
	if err := r.load(); err != nil {
		return false, err
	}
	code := call(r.dirty)
	if code < 0 {
		return false, &CallError{Func: "VBVMR_IsParametersDirty", Code: code}
	}
	return code == 1, nil
}

func (r *dllRemote) DeviceCount(kind DeviceKind) (int, error) {
	if err := r.load(); err != nil {
		return 0, err
	}
	proc := r.inCount
	if kind == Output {
		proc = r.outCount
	}
	n := call(proc)
	if n < 0 {
		return 0, &CallError{Func: proc.Name, Code: n}
	}
	return int(n), nil
}

func (r *dllRemote) DeviceName(kind DeviceKind, index int) (string, error) {
	if err := r.load(); err != nil {
		return "", err
	}
	proc := r.inDesc
	if kind == Output {
		proc = r.outDesc
	}
	var typ int32
	name := make([]byte, deviceNameSize)
	hwid := make([]byte, deviceNameSize)
	code := call(proc,
		uintptr(index),
		uintptr(unsafe.Pointer(&typ)),
		uintptr(unsafe.Pointer(&name[0])),
		uintptr(unsafe.Pointer(&hwid[0])),
	)
	if code < 0 {
		return "", &CallError{Func: proc.Name, Code: code}
	}
	return decodeANSI(name), nil
}

func (r *dllRemote) SetBusDevice(bus int, name string) error {
	return r.setScript(stringScript(busParam(bus, "device.wdm"), name))
}

func (r *dllRemote) SetStripDevice(strip int, name string) error {
	return r.setScript(stringScript(stripParam(strip, "device.wdm"), name))
}

func (r *dllRemote) StripRoute(strip int, route Route) (bool, error) {
	v, err := r.getParam(stripParam(strip, string(route)))
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *dllRemote) SetStripRoute(strip int, route Route, on bool) error {
	return r.setScript(boolScript(stripParam(strip, string(route)), on))
}

func (r *dllRemote) getParam(param string) (float32, error) {
	if err := r.load(); err != nil {
		return 0, err
	}
	var v float32
	name := encodeANSI(param)
	code := call(r.getFloat, uintptr(unsafe.Pointer(&name[0])), uintptr(unsafe.Pointer(&v)))
	if code < 0 {
		return 0, fmt.Errorf("read %s: %w", param, &CallError{Func: "VBVMR_GetParameterFloat", Code: code})
	}
	return v, nil
}

func (r *dllRemote) setScript(script string) error {
	if err := r.load(); err != nil {
		return err
	}
	buf := encodeANSI(script)
	code := call(r.setParams, uintptr(unsafe.Pointer(&buf[0])))
	switch {
	case code < 0:
		return fmt.Errorf("apply %q: %w", script, &CallError{Func: "VBVMR_SetParameters", Code: code})
	case code > 0:
		return fmt.Errorf("apply %q: script error on line %d", script, code)
	}
	return nil
}
