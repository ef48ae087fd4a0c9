// internal/storefront/queries.go
package storefront

// The query and fragment documents below are a fixed external contract with
// the platform storefront API. Field selections are reproduced verbatim and
// must not be reshaped; the Go types in types.go mirror them.

const productVariantFragment = `
fragment ProductVariant on ProductVariant {
  availableForSale
  compareAtPrice {
    amount
    currencyCode
  }
  id
  image {
    __typename
    id
    url
    altText
    width
    height
  }
  price {
    amount
    currencyCode
  }
  product {
    title
    handle
  }
  selectedOptions {
    name
    value
  }
  sku
  title
  unitPrice {
    amount
    currencyCode
  }
  quantityAvailable
}
`

const productFragment = `
fragment Product on Product {
  id
  title
  vendor
  handle
  descriptionHtml
  description
  images(first: 5) {
    nodes {
      __typename
      id
      url
      altText
      width
      height
    }
  }
  encodedVariantExistence
  encodedVariantAvailability
  options {
    name
    optionValues {
      name
      firstSelectableVariant {
        ...ProductVariant
      }
      swatch {
        color
        image {
          previewImage {
            url
          }
        }
      }
    }
  }
  selectedOrFirstAvailableVariant(selectedOptions: $selectedOptions, ignoreUnknownOptions: true, caseInsensitiveMatch: true) {
    ...ProductVariant
  }
  adjacentVariants(selectedOptions: $selectedOptions) {
    ...ProductVariant
  }
  seo {
    description
    title
  }
}
` + productVariantFragment

const productQuery = `
query Product(
  $country: CountryCode
  $handle: String!
  $language: LanguageCode
  $selectedOptions: [SelectedOptionInput!]!
) @inContext(country: $country, language: $language) {
  product(handle: $handle) {
    ...Product
  }
  shop {
    primaryDomain {
      url
    }
  }
}
` + productFragment

const recommendedProductsQuery = `
query RecommendedProducts(
  $country: CountryCode
  $handle: String!
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  productRecommendations(productHandle: $handle, intent: RELATED) {
    id
    title
    handle
    priceRange {
      minVariantPrice {
        amount
        currencyCode
      }
    }
    images(first: 1) {
      nodes {
        id
        url
        altText
        width
        height
      }
    }
  }
}
`

const cartFragment = `
fragment CartLine on CartLine {
  id
  quantity
  cost {
    totalAmount {
      amount
      currencyCode
    }
    amountPerQuantity {
      amount
      currencyCode
    }
    compareAtAmountPerQuantity {
      amount
      currencyCode
    }
  }
  merchandise {
    ... on ProductVariant {
      id
      availableForSale
      compareAtPrice {
        amount
        currencyCode
      }
      price {
        amount
        currencyCode
      }
      title
      image {
        id
        url
        altText
        width
        height
      }
      product {
        handle
        title
        id
        vendor
      }
      selectedOptions {
        name
        value
      }
      quantityAvailable
    }
  }
}

fragment CartApi on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
    totalAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    nodes {
      ...CartLine
    }
  }
}
`

const cartQuery = `
query Cart(
  $cartId: ID!
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  cart(id: $cartId) {
    ...CartApi
  }
}
` + cartFragment

const cartCreateMutation = `
mutation cartCreate(
  $input: CartInput
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  cartCreate(input: $input) {
    cart {
      ...CartApi
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesAddMutation = `
mutation cartLinesAdd(
  $cartId: ID!
  $lines: [CartLineInput!]!
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...CartApi
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesUpdateMutation = `
mutation cartLinesUpdate(
  $cartId: ID!
  $lines: [CartLineUpdateInput!]!
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {
      ...CartApi
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment

const cartLinesRemoveMutation = `
mutation cartLinesRemove(
  $cartId: ID!
  $lineIds: [ID!]!
  $country: CountryCode
  $language: LanguageCode
) @inContext(country: $country, language: $language) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {
      ...CartApi
    }
    userErrors {
      field
      message
    }
  }
}
` + cartFragment
