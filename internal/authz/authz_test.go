package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerAllowsEverything(t *testing.T) {
	subject := Owner()

	for _, module := range AllModules() {
		for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
			assert.True(t, subject.Allows(module, action), "owner should pass %s on %s", action, module)
		}
	}
}

func TestOwnerAllowsUnknownModule(t *testing.T) {
	// The owner bypass does not consult the module list at all.
	assert.True(t, Owner().Allows("anything", ActionDelete))
}

func TestScopedAbsentEntryDenies(t *testing.T) {
	subject := Scoped(map[string]ActionSet{
		ModuleCustomers: FullAccess(),
	})

	assert.True(t, subject.Allows(ModuleCustomers, ActionRead))
	assert.False(t, subject.Allows(ModuleVehicles, ActionRead))
	assert.False(t, subject.Allows(ModuleInventory, ActionDelete))
}

func TestScopedNilMapDeniesAll(t *testing.T) {
	subject := Scoped(nil)

	for _, module := range AllModules() {
		assert.False(t, subject.Allows(module, ActionRead))
	}
}

func TestScopedHonorsPartialGrants(t *testing.T) {
	subject := Scoped(map[string]ActionSet{
		ModuleVehicles: {Read: true, Update: true},
	})

	assert.True(t, subject.Allows(ModuleVehicles, ActionRead))
	assert.True(t, subject.Allows(ModuleVehicles, ActionUpdate))
	assert.False(t, subject.Allows(ModuleVehicles, ActionCreate))
	assert.False(t, subject.Allows(ModuleVehicles, ActionDelete))
}

func TestScopedUnknownModuleDenies(t *testing.T) {
	subject := Scoped(map[string]ActionSet{
		"reports": FullAccess(), // not a registered module, but present in the map
	})

	// The map entry is honored as written; what matters is that a module
	// with no entry denies.
	assert.True(t, subject.Allows("reports", ActionRead))
	assert.False(t, subject.Allows(ModuleSettings, ActionRead))
}

func TestSubjectForRole(t *testing.T) {
	perms := map[string]ActionSet{
		ModuleCustomers: {Read: true},
	}

	owner := SubjectForRole(RoleOwner, perms)
	assert.True(t, owner.Allows(ModuleSuppliers, ActionDelete), "owner ignores the grant map")

	scoped := SubjectForRole(RoleTechnician, perms)
	assert.True(t, scoped.Allows(ModuleCustomers, ActionRead))
	assert.False(t, scoped.Allows(ModuleCustomers, ActionUpdate))
	assert.False(t, scoped.Allows(ModuleSuppliers, ActionDelete))
}

func TestActionSetUnknownActionDenies(t *testing.T) {
	assert.False(t, FullAccess().Allows(Action("export")))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleOwner))
	assert.True(t, ValidRole(RoleManager))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}
