package plugins

import (
	"github.com/attrkit/attrkit/api"
)

// Core returns the fixed, priority-ordered core capability list. The
// order is a published contract; later capabilities depend on earlier
// ones having already acted on element state:
//
//   - clickHandler runs first so every downstream reaction sees the
//     engine-owned attr:click instead of the native event;
//   - method and methodMask promote link verbs before anything submits;
//   - confirm precedes elementDisabler so disabling sees the verdict;
//   - formSubmitDispatcher runs after disabling so a dispatched
//     submission's element state is final;
//   - remoteWatcher comes last, it only binds fresh nodes.
//
// A nil sender is allowed; submissions then complete without transport.
func Core(h Host, sender Sender) []api.Capability {
	return []api.Capability{
		ClickHandler(h),
		CSRF(h),
		Method(h),
		MethodMask(h),
		NavigationAdapter(h),
		Confirm(h),
		DisabledElementChecker(h),
		ElementEnabler(h),
		ElementDisabler(h),
		FormSubmitDispatcher(h, sender),
		RemoteWatcher(h),
	}
}
