package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"graspnest.app/api-server/common/id"
	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
	"graspnest.app/api-server/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		svc      service.OrganizationService
		provider *mockStoreProvider
		idc      *mockIdentityClient
		ctx      context.Context
	)

	profile := service.OrganizationProfile{Name: "Acme", City: "Lagos"}
	admin := service.AdminIdentity{Email: "Admin@Acme.io", FirstName: "Ada", LastName: "Obi"}

	// mirrorVisible makes the admin mirror row appear on lookups after
	// the in-transaction insert, the way a real transaction behaves.
	mirrorVisible := func() {
		var saved *model.User
		provider.users.createFn = func(_ context.Context, u *model.User) error {
			copied := *u
			saved = &copied
			return nil
		}
		provider.users.getByUsernameFn = func(_ context.Context, username string) (*model.User, error) {
			if saved != nil && saved.Username == username {
				return saved, nil
			}
			return nil, store.ErrNotFound
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		provider = newMockStoreProvider()
		idc = &mockIdentityClient{}
		svc = service.NewOrganizationService(&mockTxRunner{provider: provider}, provider, idc)
		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Create", func() {
		It("provisions identity, mirror and organization together", func() {
			mirrorVisible()

			var created *model.Organization
			provider.orgs.createFn = func(_ context.Context, o *model.Organization) error {
				created = o
				return nil
			}

			result, err := svc.Create(ctx, profile, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Org).To(Equal(created))
			Expect(result.Org.Name).To(Equal("Acme"))
			Expect(result.Admin.Username).To(Equal("admin@acme.io"))
			Expect(result.Admin.Role).To(Equal(model.RoleOrgAdmin))
			Expect(result.Admin.OrgID).To(HaveValue(Equal(created.ID)))
			Expect(result.NotificationSent).To(BeTrue())
			Expect(idc.createUserCalls).To(Equal(1))
			Expect(idc.deleteUserCalls).To(BeZero())
		})

		It("rejects a duplicate active name before touching the identity provider", func() {
			provider.orgs.getActiveByNameFn = func(_ context.Context, name string) (*model.Organization, error) {
				return &model.Organization{ID: 7, Name: name}, nil
			}

			_, err := svc.Create(ctx, profile, admin)
			Expect(err).To(MatchError(service.ErrConflict))
			Expect(idc.createUserCalls).To(BeZero())
			Expect(provider.orgs.createCalls).To(BeZero())
		})

		It("rejects a duplicate admin username before touching the identity provider", func() {
			provider.users.getByUsernameFn = func(_ context.Context, username string) (*model.User, error) {
				return &model.User{ID: 3, Username: username}, nil
			}

			_, err := svc.Create(ctx, profile, admin)
			Expect(err).To(MatchError(service.ErrConflict))
			Expect(idc.createUserCalls).To(BeZero())
		})

		It("writes nothing locally when identity provisioning fails", func() {
			idc.createUserFn = func(_ context.Context, _ identity.CreateUserParams) (string, error) {
				return "", errors.New("keycloak down")
			}

			_, err := svc.Create(ctx, profile, admin)
			Expect(err).To(MatchError(service.ErrProvisioningFailed))
			Expect(provider.users.createCalls).To(BeZero())
			Expect(provider.orgs.createCalls).To(BeZero())
			Expect(idc.deleteUserCalls).To(BeZero())
		})

		It("deletes the provisioned identity when the local write fails after it", func() {
			mirrorVisible()
			provider.orgs.createFn = func(_ context.Context, _ *model.Organization) error {
				return errors.New("insert failed")
			}

			_, err := svc.Create(ctx, profile, admin)
			Expect(err).To(HaveOccurred())
			Expect(idc.createUserCalls).To(Equal(1))
			Expect(idc.deleteUserCalls).To(Equal(1))
			Expect(idc.lastDeletedUserID).To(Equal("identity-1"))
		})

		It("reports inconsistent state when the mirror row cannot be located", func() {
			// createFn succeeds but the follow-up lookup stays empty
			provider.users.createFn = func(_ context.Context, _ *model.User) error { return nil }

			_, err := svc.Create(ctx, profile, admin)
			Expect(err).To(MatchError(service.ErrInconsistentState))
			Expect(idc.deleteUserCalls).To(Equal(1))
		})

		It("returns partial success when the credential email fails", func() {
			mirrorVisible()
			idc.setupEmailFn = func(_ context.Context, _ string) error {
				return errors.New("smtp misconfigured")
			}

			result, err := svc.Create(ctx, profile, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.NotificationSent).To(BeFalse())
			Expect(idc.deleteUserCalls).To(BeZero())
		})
	})

	Describe("Update", func() {
		It("updates entity and admin fields together when the email matches", func() {
			provider.orgs.getActiveByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID, AdminUserID: 9, Name: "Acme", Active: true}, nil
			}
			provider.users.getByIDFn = func(_ context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, Email: "admin@acme.io", Role: model.RoleOrgAdmin}, nil
			}

			next := profile
			next.Name = "Acme Holdings"
			view, err := svc.Update(ctx, 42, next, admin)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Org.Name).To(Equal("Acme Holdings"))
			Expect(view.Admin.FirstName).To(Equal("Ada"))
		})

		It("refuses to reassign ownership when the admin email does not match", func() {
			provider.orgs.getActiveByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID, AdminUserID: 9, Name: "Acme", Active: true}, nil
			}
			provider.users.getByIDFn = func(_ context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, Email: "someone-else@acme.io"}, nil
			}

			_, err := svc.Update(ctx, 42, profile, admin)
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(provider.users.updateCalls).To(BeZero())
		})

		It("returns not found for a deactivated organization", func() {
			_, err := svc.Update(ctx, 42, profile, admin)
			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})

	Describe("Remove", func() {
		It("soft deletes and surfaces not found for missing rows", func() {
			provider.orgs.deactivateFn = func(_ context.Context, _ int64) error {
				return store.ErrNotFound
			}
			Expect(svc.Remove(ctx, 42)).To(MatchError(store.ErrNotFound))

			provider.orgs.deactivateFn = nil
			Expect(svc.Remove(ctx, 42)).To(Succeed())
		})
	})
})
