package app

import (
	"fmt"

	commentRepository "github.com/ovationhq/ovation/internal/comment/repository"
	commentUseCase "github.com/ovationhq/ovation/internal/comment/usecase"
	lessonRepository "github.com/ovationhq/ovation/internal/lesson/repository"
	lessonUseCase "github.com/ovationhq/ovation/internal/lesson/usecase"
	paymentRepository "github.com/ovationhq/ovation/internal/payment/repository"
	paymentUseCase "github.com/ovationhq/ovation/internal/payment/usecase"
	presentationRepository "github.com/ovationhq/ovation/internal/presentation/repository"
	presentationUseCase "github.com/ovationhq/ovation/internal/presentation/usecase"
	sessionRepository "github.com/ovationhq/ovation/internal/session/repository"
	sessionService "github.com/ovationhq/ovation/internal/session/service"
	sessionUseCase "github.com/ovationhq/ovation/internal/session/usecase"
	shopRepository "github.com/ovationhq/ovation/internal/shop/repository"
	shopUseCase "github.com/ovationhq/ovation/internal/shop/usecase"
	subscriptionRepository "github.com/ovationhq/ovation/internal/subscription/repository"
	subscriptionUseCase "github.com/ovationhq/ovation/internal/subscription/usecase"
	userRepository "github.com/ovationhq/ovation/internal/user/repository"
	userService "github.com/ovationhq/ovation/internal/user/service"
	userUseCase "github.com/ovationhq/ovation/internal/user/usecase"
)

// initServices builds the stateless domain services.
func (c *Container) initServices() {
	c.servicesInit.Do(func() {
		c.passwordService = userService.NewPasswordService()
		c.tokenService = sessionService.NewTokenService()
	})
}

// initRepositories builds one repository per module, selecting the
// implementation for the configured database driver.
func (c *Container) initRepositories() {
	c.reposInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["repos"] = fmt.Errorf("failed to get database for repositories: %w", err)
			return
		}

		switch c.config.DBDriver {
		case "mysql":
			c.userRepo = userRepository.NewMySQLUserRepository(db)
			c.sessionRepo = sessionRepository.NewMySQLSessionRepository(db)
			c.subscriptionRepo = subscriptionRepository.NewMySQLSubscriptionRepository(db)
			c.paymentRepo = paymentRepository.NewMySQLPaymentRepository(db)
			c.presentationRepo = presentationRepository.NewMySQLPresentationRepository(db)
			c.lessonRepo = lessonRepository.NewMySQLLessonRepository(db)
			c.productRepo = shopRepository.NewMySQLProductRepository(db)
			c.commentRepo = commentRepository.NewMySQLCommentRepository(db)
		case "postgres":
			c.userRepo = userRepository.NewPostgreSQLUserRepository(db)
			c.sessionRepo = sessionRepository.NewPostgreSQLSessionRepository(db)
			c.subscriptionRepo = subscriptionRepository.NewPostgreSQLSubscriptionRepository(db)
			c.paymentRepo = paymentRepository.NewPostgreSQLPaymentRepository(db)
			c.presentationRepo = presentationRepository.NewPostgreSQLPresentationRepository(db)
			c.lessonRepo = lessonRepository.NewPostgreSQLLessonRepository(db)
			c.productRepo = shopRepository.NewPostgreSQLProductRepository(db)
			c.commentRepo = commentRepository.NewPostgreSQLCommentRepository(db)
		default:
			c.initErrors["repos"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// initUseCases builds every module use case.
func (c *Container) initUseCases() {
	c.useCasesInit.Do(func() {
		c.initServices()
		c.initRepositories()
		if err, exists := c.initErrors["repos"]; exists {
			c.initErrors["useCases"] = err
			return
		}

		catalog, err := c.Catalog()
		if err != nil {
			c.initErrors["useCases"] = err
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["useCases"] = err
			return
		}

		c.userUC = userUseCase.NewUserUseCase(c.userRepo, c.passwordService, catalog)
		c.sessionUC = sessionUseCase.NewSessionUseCase(
			c.sessionRepo,
			c.userRepo,
			c.tokenService,
			c.passwordService,
			c.config.SessionExpiration,
		)
		c.subscriptionUC = subscriptionUseCase.NewSubscriptionUseCase(
			txManager,
			c.subscriptionRepo,
			c.paymentRepo,
			c.userRepo,
		)
		c.paymentUC = paymentUseCase.NewPaymentUseCase(c.paymentRepo)
		c.presentationUC = presentationUseCase.NewPresentationUseCase(c.presentationRepo)
		c.lessonUC = lessonUseCase.NewLessonUseCase(c.lessonRepo)
		c.productUC = shopUseCase.NewProductUseCase(c.productRepo)
		c.commentUC = commentUseCase.NewCommentUseCase(c.commentRepo, c.presentationRepo)
	})
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.userUC, nil
}

// SessionUseCase returns the session use case instance.
func (c *Container) SessionUseCase() (sessionUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.sessionUC, nil
}

// SubscriptionUseCase returns the subscription use case instance.
func (c *Container) SubscriptionUseCase() (subscriptionUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.subscriptionUC, nil
}

// PaymentUseCase returns the payment use case instance.
func (c *Container) PaymentUseCase() (paymentUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.paymentUC, nil
}

// PresentationUseCase returns the presentation use case instance.
func (c *Container) PresentationUseCase() (presentationUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.presentationUC, nil
}

// LessonUseCase returns the lesson use case instance.
func (c *Container) LessonUseCase() (lessonUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.lessonUC, nil
}

// ProductUseCase returns the shop product use case instance.
func (c *Container) ProductUseCase() (shopUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.productUC, nil
}

// CommentUseCase returns the comment use case instance.
func (c *Container) CommentUseCase() (commentUseCase.UseCase, error) {
	c.initUseCases()
	if err, exists := c.initErrors["useCases"]; exists {
		return nil, err
	}
	return c.commentUC, nil
}
