package common_test

import (
	"errors"
	"net/http"

	"lemonworks/common"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Errors", func() {
	Describe("ErrBadParam", func() {
		Describe("Error", func() {
			It("should return default message if cause is nil", func() {
				err := common.ErrBadParam{}
				Expect(err.Error()).To(Equal("common.bad_param"))
			})
			It("should invoke the Error() function of cause property if cause is not nil", func() {
				err := common.ErrBadParam{Cause: errors.New("invalid id")}
				Expect(err.Error()).To(Equal("invalid id"))
			})
		})
		Describe("Respond", func() {
			It("should respond bad request with the cause message", func() {
				err := &common.ErrBadParam{Cause: errors.New("invalid id")}
				Expect(*err.Respond()).To(Equal(common.BizErrorDetail{
					Status: http.StatusBadRequest, Code: "common.bad_param", Message: "invalid id"}))
			})
		})
	})

	Describe("JoinURL", func() {
		It("should join base and path with a single slash", func() {
			Expect(common.JoinURL("http://a.b/", "/orders")).To(Equal("http://a.b/orders"))
			Expect(common.JoinURL("http://a.b", "orders")).To(Equal("http://a.b/orders"))
			Expect(common.JoinURL("http://a.b", "")).To(Equal("http://a.b"))
		})
	})

	Describe("NextId", func() {
		It("should generate increasing ids", func() {
			worker := common.NewIdWorker(7)
			id1 := common.NextId(worker)
			id2 := common.NextId(worker)
			Expect(uint64(id2)).To(BeNumerically(">", uint64(id1)))
			Expect(id1.String()).NotTo(BeEmpty())
		})
	})
})
