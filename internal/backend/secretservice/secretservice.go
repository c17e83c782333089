// SPDX-License-Identifier: Apache-2.0

//go:build linux

// Package secretservice provides a backend that talks to the
// org.freedesktop.secrets daemon (GNOME Keyring, KWallet, KeePassXC, ...)
// over the session D-Bus. Secrets are stored as items in the default
// collection with lookup attributes {"service", "account"}, using a plain
// (unencrypted transport) session as permitted by the Secret Service
// specification for same-user session buses.
package secretservice

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/akihiro/secrets-cli/internal/backend"
)

const (
	busName     = "org.freedesktop.secrets"
	servicePath = "/org/freedesktop/secrets"

	serviceIface    = "org.freedesktop.Secret.Service"
	collectionIface = "org.freedesktop.Secret.Collection"
	itemIface       = "org.freedesktop.Secret.Item"

	contentType = "text/plain; charset=utf8"
)

// secret is the D-Bus (oayays) struct passed to CreateItem and returned
// by GetSecret.
type secret struct {
	Session     dbus.ObjectPath
	Parameters  []byte
	Value       []byte
	ContentType string
}

// Backend implements backend.Backend against a running Secret Service daemon.
type Backend struct {
	conn    *dbus.Conn
	session dbus.ObjectPath
}

// New connects to the session bus and opens a plain session with the
// Secret Service daemon. Fails if no daemon owns org.freedesktop.secrets.
func New() (*Backend, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}

	svc := conn.Object(busName, servicePath)
	var output dbus.Variant
	var session dbus.ObjectPath
	call := svc.Call(serviceIface+".OpenSession", 0, "plain", dbus.MakeVariant(""))
	if err := call.Store(&output, &session); err != nil {
		return nil, fmt.Errorf("open secret service session: %w", err)
	}
	return &Backend{conn: conn, session: session}, nil
}

// Name implements backend.Backend.
func (b *Backend) Name() string { return "secret-service" }

func attributes(service, name string) map[string]string {
	return map[string]string{"service": service, "account": name}
}

// defaultCollection resolves the "default" alias to a collection path.
func (b *Backend) defaultCollection() (dbus.ObjectPath, error) {
	svc := b.conn.Object(busName, servicePath)
	var path dbus.ObjectPath
	if err := svc.Call(serviceIface+".ReadAlias", 0, "default").Store(&path); err != nil {
		return "/", fmt.Errorf("read default collection alias: %w", err)
	}
	if path == "/" {
		return "/", fmt.Errorf("secret service has no default collection")
	}
	return path, nil
}

// unlock asks the daemon to unlock the given objects. Objects that need a
// user prompt stay locked; the daemon's own prompt machinery handles them
// out of band and the caller retries via the returned paths.
func (b *Backend) unlock(objects []dbus.ObjectPath) ([]dbus.ObjectPath, error) {
	svc := b.conn.Object(busName, servicePath)
	var unlocked []dbus.ObjectPath
	var prompt dbus.ObjectPath
	if err := svc.Call(serviceIface+".Unlock", 0, objects).Store(&unlocked, &prompt); err != nil {
		return nil, fmt.Errorf("unlock: %w", err)
	}
	return unlocked, nil
}

// findItem locates the item for (service, name), unlocking it if necessary.
// Returns "/" if no item matches.
func (b *Backend) findItem(service, name string) (dbus.ObjectPath, error) {
	svc := b.conn.Object(busName, servicePath)
	var unlocked, locked []dbus.ObjectPath
	call := svc.Call(serviceIface+".SearchItems", 0, attributes(service, name))
	if err := call.Store(&unlocked, &locked); err != nil {
		return "/", fmt.Errorf("search items: %w", err)
	}
	if len(unlocked) > 0 {
		return unlocked[0], nil
	}
	if len(locked) > 0 {
		paths, err := b.unlock(locked)
		if err != nil {
			return "/", err
		}
		if len(paths) > 0 {
			return paths[0], nil
		}
		return "/", fmt.Errorf("item for %s/%s is locked and could not be unlocked", service, name)
	}
	return "/", nil
}

// Get implements backend.Backend.
func (b *Backend) Get(service, name string) (string, error) {
	itemPath, err := b.findItem(service, name)
	if err != nil {
		return "", err
	}
	if itemPath == "/" {
		return "", &backend.ErrNotFound{Service: service, Name: name}
	}

	item := b.conn.Object(busName, itemPath)
	var sec secret
	if err := item.Call(itemIface+".GetSecret", 0, b.session).Store(&sec); err != nil {
		return "", fmt.Errorf("get secret %s/%s: %w", service, name, err)
	}
	return string(sec.Value), nil
}

// Set implements backend.Backend.
func (b *Backend) Set(service, name, value string) error {
	colPath, err := b.defaultCollection()
	if err != nil {
		return err
	}
	if _, err := b.unlock([]dbus.ObjectPath{colPath}); err != nil {
		return err
	}

	properties := map[string]dbus.Variant{
		itemIface + ".Label":      dbus.MakeVariant(service + "/" + name),
		itemIface + ".Attributes": dbus.MakeVariant(attributes(service, name)),
	}
	sec := secret{
		Session:     b.session,
		Parameters:  []byte{},
		Value:       []byte(value),
		ContentType: contentType,
	}

	col := b.conn.Object(busName, colPath)
	var itemPath, prompt dbus.ObjectPath
	call := col.Call(collectionIface+".CreateItem", 0, properties, sec, true)
	if err := call.Store(&itemPath, &prompt); err != nil {
		return fmt.Errorf("create item %s/%s: %w", service, name, err)
	}
	if itemPath == "/" {
		return fmt.Errorf("create item %s/%s: daemon requires a prompt (collection locked?)", service, name)
	}
	return nil
}

// Delete implements backend.Backend.
func (b *Backend) Delete(service, name string) error {
	itemPath, err := b.findItem(service, name)
	if err != nil {
		return err
	}
	if itemPath == "/" {
		return &backend.ErrNotFound{Service: service, Name: name}
	}

	item := b.conn.Object(busName, itemPath)
	var prompt dbus.ObjectPath
	if err := item.Call(itemIface+".Delete", 0).Store(&prompt); err != nil {
		return fmt.Errorf("delete item %s/%s: %w", service, name, err)
	}
	return nil
}
